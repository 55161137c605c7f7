package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/notify"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer/service/mocks"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
	verifiermocks "github.com/chainsafe/usdt-payout-verifier/pkg/verification/service/mocks"
)

const (
	bscDeposit  = "0x1111111111111111111111111111111111111111"
	tronDeposit = "TQiBwkXtUUNygicvHJVVDCDKyVFr2YNTey"
	payer       = "0x2222222222222222222222222222222222222222"
	bscContract = "0x55d398326f99059ff775485246999027b3197955"
	ethContract = "0xdac17f958d2ee523a2206206994597c13d831ec7"
	paymentTx   = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type recordingNotifier struct {
	events []notify.Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event notify.Event) error {
	n.events = append(n.events, event)
	return n.err
}

type fixture struct {
	svc      Service
	store    *mocks.Store
	users    *mocks.Users
	verifier *verifiermocks.Service
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg, err := network.NewRegistry(map[string]config.NetworkConfig{
		"BEP20": {DepositAddress: bscDeposit},
		"TRC20": {DepositAddress: tronDeposit},
	})
	require.NoError(t, err)

	f := &fixture{
		store:    mocks.NewStore(t),
		users:    mocks.NewUsers(t),
		verifier: verifiermocks.NewService(t),
		notifier: &recordingNotifier{},
	}
	fees := transfer.NewFeeSchedule(config.TransferConfig{
		FixedFeeThreshold: d("20"),
		FixedFeeAmount:    d("1"),
		PercentageFee:     d("0.05"),
		MinWithdrawal:     d("10"),
		MaxWithdrawal:     d("1000"),
	})
	rates := map[string]decimal.Decimal{"sar": d("3.75")}

	f.svc = NewService(f.store, f.users, reg, f.verifier, f.notifier, fees, rates, zap.NewNop(),
		WithSuffixFunc(func() int64 { return 1234 }))
	return f
}

func awaitingTransfer() *transfer.Transfer {
	return &transfer.Transfer{
		ID:             uuid.New(),
		UserID:         "42",
		Type:           transfer.TypeNameTransfer,
		LocalCurrency:  "SAR",
		Amount:         d("100"),
		UniqueAmount:   d("100.03234"),
		Network:        network.BEP20,
		DepositAddress: bscDeposit,
		Status:         transfer.StatusAwaitingPayment,
	}
}

func verifiedResult(amount, contract string) *verification.Result {
	return &verification.Result{
		TxID:        paymentTx,
		Network:     network.BEP20,
		Amount:      d(amount),
		From:        payer,
		To:          bscDeposit,
		Contract:    contract,
		BlockNumber: 4242,
		ConfirmedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		Confirmed:   true,
	}
}

func TestCreateTransfer(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().UserExists(mock.Anything, "42").Return(true, nil)

	var stored *transfer.Transfer
	f.store.EXPECT().CreateTransfer(mock.Anything, mock.Anything).
		Run(func(_ context.Context, tr *transfer.Transfer) { stored = tr }).
		Return(nil)

	got, err := f.svc.CreateTransfer(context.Background(), &transfer.CreateRequest{
		UserID:        " 42 ",
		Type:          transfer.TypeAccountDeposit,
		Recipient:     transfer.Recipient{Name: "Sara", AccountNumber: "SA0380000000608010167519"},
		LocalCurrency: "sar",
		Amount:        d("20"),
		Network:       "bep20",
	})
	require.NoError(t, err)
	require.Same(t, stored, got)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, "SAR", got.LocalCurrency)
	assert.Equal(t, network.BEP20, got.Network)
	assert.Equal(t, bscDeposit, got.DepositAddress)
	assert.Equal(t, transfer.StatusAwaitingPayment, got.Status)
	assert.True(t, got.UniqueAmount.Equal(d("20.03234")), got.UniqueAmount.String())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateTransfer_TronDepositIsCanonical(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().UserExists(mock.Anything, mock.Anything).Return(true, nil)
	f.store.EXPECT().CreateTransfer(mock.Anything, mock.Anything).Return(nil)

	got, err := f.svc.CreateTransfer(context.Background(), &transfer.CreateRequest{
		UserID:        "7",
		Type:          transfer.TypeNameTransfer,
		LocalCurrency: "SAR",
		Amount:        d("50"),
		Network:       network.TRC20,
	})
	require.NoError(t, err)
	assert.Equal(t, "41a1b2c3d4e5f60718293a4b5c6d7e8f9012345678", got.DepositAddress)
}

func TestCreateTransfer_InvalidInput(t *testing.T) {
	valid := func() *transfer.CreateRequest {
		return &transfer.CreateRequest{
			UserID:        "42",
			Type:          transfer.TypeNameTransfer,
			LocalCurrency: "SAR",
			Amount:        d("100"),
			Network:       network.BEP20,
		}
	}

	tests := []struct {
		name   string
		mutate func(r *transfer.CreateRequest)
	}{
		{"missing user", func(r *transfer.CreateRequest) { r.UserID = "" }},
		{"unknown type", func(r *transfer.CreateRequest) { r.Type = "cash" }},
		{"unknown network", func(r *transfer.CreateRequest) { r.Network = "SOL20" }},
		{"unsupported currency", func(r *transfer.CreateRequest) { r.LocalCurrency = "EUR" }},
		{"below minimum", func(r *transfer.CreateRequest) { r.Amount = d("9.99") }},
		{"above maximum", func(r *transfer.CreateRequest) { r.Amount = d("1000.01") }},
		{"no deposit address", func(r *transfer.CreateRequest) { r.Network = network.ERC20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := valid()
			tt.mutate(req)

			_, err := f.svc.CreateTransfer(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.CategoryDataError), err)
		})
	}
}

func TestCreateTransfer_UnregisteredUser(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().UserExists(mock.Anything, "99").Return(false, nil)

	_, err := f.svc.CreateTransfer(context.Background(), &transfer.CreateRequest{
		UserID:        "99",
		Type:          transfer.TypeNameTransfer,
		LocalCurrency: "SAR",
		Amount:        d("100"),
		Network:       network.BEP20,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryForbidden), err)
	assert.ErrorIs(t, err, ErrUserNotRegistered)
	f.store.AssertNotCalled(t, "CreateTransfer", mock.Anything, mock.Anything)
}

func TestCreateTransfer_UserLookupFails(t *testing.T) {
	f := newFixture(t)
	f.users.EXPECT().UserExists(mock.Anything, "42").Return(false, errors.New("connection refused"))

	_, err := f.svc.CreateTransfer(context.Background(), &transfer.CreateRequest{
		UserID:        "42",
		Type:          transfer.TypeNameTransfer,
		LocalCurrency: "SAR",
		Amount:        d("100"),
		Network:       network.BEP20,
	})
	require.Error(t, err)
	assert.False(t, apperrors.Is(err, apperrors.CategoryForbidden))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSubmitTransaction(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().
		VerifyTransactionByHash(mock.Anything, mock.MatchedBy(func(req *verification.Request) bool {
			return req.Network == network.BEP20 &&
				req.TxID == paymentTx &&
				req.ExpectedAmount.Equal(d("100.03234")) &&
				req.ExpectedAddress == bscDeposit
		})).
		Return(verifiedResult("100.03234", bscContract), nil)
	f.store.EXPECT().UpdateTransfer(mock.Anything, tr).Return(nil)

	got, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{
		TxHash: "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
	})
	require.NoError(t, err)

	assert.Equal(t, transfer.StatusPendingReview, got.Status)
	assert.Equal(t, paymentTx, got.TxHash)
	assert.Equal(t, payer, got.FromAddress)
	assert.Equal(t, bscContract, got.ContractAddress)
	assert.True(t, got.VerifiedAmount.Equal(d("100.03234")))
	assert.True(t, got.Commission.Equal(d("5.001617")), got.Commission.String())
	assert.True(t, got.NetAmount.Equal(d("95.03")), got.NetAmount.String())
	assert.True(t, got.ExchangeRate.Equal(d("3.75")))
	assert.True(t, got.LocalAmount.Equal(d("356.36")), got.LocalAmount.String())
	assert.True(t, got.RoundedLocalAmount.Equal(d("356")))
	require.NotNil(t, got.VerifiedAt)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notify.KindPaymentVerified, f.notifier.events[0].Kind)
	assert.Same(t, got, f.notifier.events[0].Transfer)
}

func TestSubmitTransaction_DuplicateTx(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(true, nil)

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataConflict))
	assert.ErrorIs(t, err, transfer.ErrDuplicateTx)
	assert.Empty(t, f.notifier.events)
}

func TestSubmitTransaction_DuplicateRaceOnUpdate(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).
		Return(verifiedResult("100.03234", bscContract), nil)
	f.store.EXPECT().UpdateTransfer(mock.Anything, tr).Return(transfer.ErrDuplicateTx)

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataConflict))
	assert.Empty(t, f.notifier.events)
}

func TestSubmitTransaction_NotVerified(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).Return(nil, nil)

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryUnprocessable))
	assert.Equal(t, transfer.StatusAwaitingPayment, tr.Status)
	assert.Empty(t, f.notifier.events)
}

func TestSubmitTransaction_VerifierError(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).Return(nil, context.Canceled)

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitTransaction_ContractOfAnotherNetwork(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).
		Return(verifiedResult("100.03234", ethContract), nil)

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}

func TestSubmitTransaction_ResultMustMatchTransfer(t *testing.T) {
	otherDeposit := verifiedResult("100.03234", bscContract)
	otherDeposit.To = "0x3333333333333333333333333333333333333333"

	tests := []struct {
		name   string
		result *verification.Result
	}{
		// A result cached by an earlier one-shot verification of a smaller payment
		{"smaller cached payment", verifiedResult("10.03", bscContract)},
		{"just outside tolerance", verifiedResult("100.04235", bscContract)},
		{"other recipient", otherDeposit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tr := awaitingTransfer()

			f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
			f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
			f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).Return(tt.result, nil)

			_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.CategoryUnprocessable), err)
			assert.ErrorIs(t, err, ErrPaymentMismatch)
			assert.Equal(t, transfer.StatusAwaitingPayment, tr.Status)
			assert.Empty(t, tr.TxHash)
			assert.Empty(t, f.notifier.events)
		})
	}
}

func TestSubmitTransaction_AcceptsAmountAtToleranceBoundary(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).
		Return(verifiedResult("100.04234", bscContract), nil)
	f.store.EXPECT().UpdateTransfer(mock.Anything, tr).Return(nil)

	got, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPendingReview, got.Status)
	assert.True(t, got.VerifiedAmount.Equal(d("100.04234")))
}

func TestSubmitTransaction_DeadlineReportsNotVerified(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryUnprocessable), err)
	assert.ErrorIs(t, err, ErrNotVerified)
	assert.Equal(t, transfer.StatusAwaitingPayment, tr.Status)
}

func TestSubmitTransaction_NotifyFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("webhook down")
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().RecordExistsByTxID(mock.Anything, paymentTx).Return(false, nil)
	f.verifier.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).
		Return(verifiedResult("100.03234", bscContract), nil)
	f.store.EXPECT().UpdateTransfer(mock.Anything, tr).Return(nil)

	got, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPendingReview, got.Status)
	assert.Len(t, f.notifier.events, 1)
}

func TestSubmitTransaction_InvalidInput(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{})
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	_, err = f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: "0x1234"})
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}

func TestSubmitTransaction_WrongStatus(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()
	tr.Status = transfer.StatusCancelled

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)

	_, err := f.svc.SubmitTransaction(context.Background(), tr.ID, &transfer.SubmitRequest{TxHash: paymentTx})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataConflict))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetTransfer_NotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.store.EXPECT().GetTransfer(mock.Anything, id).Return(nil, transfer.ErrNotFound)

	_, err := f.svc.GetTransfer(context.Background(), id)
	assert.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))
}

func TestCancelTransfer(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().UpdateTransfer(mock.Anything, tr).Return(nil)

	got, err := f.svc.CancelTransfer(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCancelled, got.Status)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notify.KindCancelled, f.notifier.events[0].Kind)
}

func TestCancelTransfer_AfterPayment(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()
	tr.Status = transfer.StatusPendingReview

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)

	_, err := f.svc.CancelTransfer(context.Background(), tr.ID)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataConflict))
	assert.Empty(t, f.notifier.events)
}

func TestCompleteTransfer(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()
	tr.Status = transfer.StatusPendingReview

	_, err := f.svc.CompleteTransfer(context.Background(), tr.ID, &transfer.CompleteRequest{ReceiptRef: " "})
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().UpdateTransfer(mock.Anything, tr).Return(nil)

	got, err := f.svc.CompleteTransfer(context.Background(), tr.ID, &transfer.CompleteRequest{ReceiptRef: "RCPT-9"})
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCompleted, got.Status)
	assert.Equal(t, "RCPT-9", got.ReceiptRef)
	require.NotNil(t, got.CompletedAt)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notify.KindCompleted, f.notifier.events[0].Kind)
}

func TestCompleteTransfer_NotReviewed(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)

	_, err := f.svc.CompleteTransfer(context.Background(), tr.ID, &transfer.CompleteRequest{ReceiptRef: "RCPT-9"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectTransfer(t *testing.T) {
	f := newFixture(t)
	tr := awaitingTransfer()
	tr.Status = transfer.StatusPendingReview

	_, err := f.svc.RejectTransfer(context.Background(), tr.ID, &transfer.RejectRequest{})
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))

	f.store.EXPECT().GetTransfer(mock.Anything, tr.ID).Return(tr, nil)
	f.store.EXPECT().UpdateTransfer(mock.Anything, tr).Return(nil)

	got, err := f.svc.RejectTransfer(context.Background(), tr.ID, &transfer.RejectRequest{Reason: "recipient name mismatch"})
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusRejected, got.Status)
	assert.Equal(t, "recipient name mismatch", got.RejectionReason)
	assert.Equal(t, notify.KindRejected, f.notifier.events[0].Kind)
}

func TestListTransfers_Paging(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().
		ListTransfers(mock.Anything, transfer.ListFilter{Status: transfer.StatusPendingReview, Page: 1, PerPage: 10}).
		Return([]*transfer.Transfer{awaitingTransfer()}, 21, nil)

	page, err := f.svc.ListTransfers(context.Background(), transfer.ListFilter{Status: transfer.StatusPendingReview})
	require.NoError(t, err)
	assert.Equal(t, 21, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Transfers, 1)

	f.store.EXPECT().
		ListTransfers(mock.Anything, transfer.ListFilter{Page: 2, PerPage: 100}).
		Return(nil, 0, nil)

	page, err = f.svc.ListTransfers(context.Background(), transfer.ListFilter{Page: 2, PerPage: 500})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)

	_, err = f.svc.ListTransfers(context.Background(), transfer.ListFilter{Status: "lost"})
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}
