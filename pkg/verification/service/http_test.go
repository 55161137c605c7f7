package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/service/mocks"
)

func newVerifyTestServer(svc Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewLog(svc, zap.NewNop()), zap.NewNop())
	return r
}

func postVerify(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/verifications", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestVerifyHTTP_InvalidJSON_ReturnsBadRequest(t *testing.T) {
	svc := mocks.NewService(t)

	rec := postVerify(t, newVerifyTestServer(svc), "{invalid")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "invalid JSON", got.Error)
	assert.Equal(t, http.StatusBadRequest, got.Code)
}

func TestVerifyHTTP_Verified(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		VerifyTransactionByHash(mock.Anything, mock.MatchedBy(func(req *verification.Request) bool {
			return req.Network == network.BEP20 &&
				req.TxID == txHash &&
				req.ExpectedAmount.Equal(decimal.RequireFromString("20.00")) &&
				req.ExpectedAddress == recipient
		})).
		Return(&verification.Result{
			TxID:      txHash,
			Network:   network.BEP20,
			Amount:    decimal.RequireFromString("20.005"),
			To:        recipient,
			Contract:  bscContract,
			Confirmed: true,
		}, nil).
		Once()

	rec := postVerify(t, newVerifyTestServer(svc),
		`{"network":"BEP20","tx_id":"`+txHash+`","expected_amount":"20.00","expected_address":"`+recipient+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Verified bool `json:"verified"`
		Result   struct {
			Amount   string `json:"amount"`
			Contract string `json:"contract_address"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Verified)
	assert.Equal(t, "20.005", got.Result.Amount)
	assert.Equal(t, bscContract, got.Result.Contract)
}

func TestVerifyHTTP_NotVerified(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).Return(nil, nil).Once()

	rec := postVerify(t, newVerifyTestServer(svc),
		`{"network":"BEP20","tx_id":"`+txHash+`","expected_amount":19.5,"expected_address":"`+recipient+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"verified":false}`, rec.Body.String())
}

func TestVerifyHTTP_ValidationError(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		VerifyTransactionByHash(mock.Anything, mock.Anything).
		Return(nil, apperrors.BadRequestError(network.ErrUnsupportedNetwork, "unsupported network")).
		Once()

	rec := postVerify(t, newVerifyTestServer(svc), `{"network":"SOL"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported network")
}

func TestVerifyHTTP_UnexpectedError(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		VerifyTransactionByHash(mock.Anything, mock.Anything).
		Return(nil, errors.New("boom")).
		Once()

	rec := postVerify(t, newVerifyTestServer(svc), `{}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestVerifyHTTP_DeadlineReportsUnverified(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().VerifyTransactionByHash(mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded).
		Once()

	rec := postVerify(t, newVerifyTestServer(svc),
		`{"network":"BEP20","tx_id":"`+txHash+`","expected_amount":"20.00","expected_address":"`+recipient+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Verified)
	assert.Nil(t, got.Result)
}
