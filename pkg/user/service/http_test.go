package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/usdt-payout-verifier/pkg/app/http"
	"github.com/chainsafe/usdt-payout-verifier/pkg/user"
)

func requireOperatorHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Operator") == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newUserTestServer(svc Service, operatorAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewLog(svc, zap.NewNop()), operatorAuth, zap.NewNop())
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var operator = http.Header{"X-Operator": {"ops"}}

func TestUserHTTP_Register(t *testing.T) {
	svc, store := newTestService(t)
	store.EXPECT().RegisterUser(mock.Anything, "42", "WELCOME", fixedNow).
		Return(&user.User{UserID: "42", RegistrationCode: "WELCOME", Status: user.StatusActive, RegisteredAt: fixedNow}, nil)

	rec := do(t, newUserTestServer(svc, nil), http.MethodPost, "/users",
		`{"user_id":"42","registration_code":"welcome"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, user.StatusActive, got.Status)
}

func TestUserHTTP_RegisterWithUnusableCode(t *testing.T) {
	svc, store := newTestService(t)
	store.EXPECT().RegisterUser(mock.Anything, "42", "SPENT", fixedNow).Return(nil, user.ErrCodeUnavailable)

	rec := do(t, newUserTestServer(svc, nil), http.MethodPost, "/users",
		`{"user_id":"42","registration_code":"spent"}`, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var got apphttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, user.ErrCodeUnavailable.Error(), got.ErrMsg)
}

func TestUserHTTP_GetUnknown(t *testing.T) {
	svc, store := newTestService(t)
	store.EXPECT().GetUser(mock.Anything, "9").Return(nil, user.ErrUserNotFound)

	rec := do(t, newUserTestServer(svc, nil), http.MethodGet, "/users/9", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHTTP_CodeRoutesDisabledWithoutAuth(t *testing.T) {
	svc, _ := newTestService(t)

	rec := do(t, newUserTestServer(svc, nil), http.MethodGet, "/admin/codes", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHTTP_CodeRoutesRequireOperator(t *testing.T) {
	svc, _ := newTestService(t)

	rec := do(t, newUserTestServer(svc, requireOperatorHeader), http.MethodPost, "/admin/codes", `{"code":"X"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHTTP_CodeLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	h := newUserTestServer(svc, requireOperatorHeader)

	store.EXPECT().CreateCode(mock.Anything, mock.Anything).Return(nil)
	rec := do(t, h, http.MethodPost, "/admin/codes", `{"code":"launch","max_uses":10}`, operator)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created user.RegistrationCode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "LAUNCH", created.Code)
	assert.Equal(t, 10, created.MaxUses)

	store.EXPECT().ListCodes(mock.Anything).Return([]*user.RegistrationCode{&created}, nil)
	rec = do(t, h, http.MethodGet, "/admin/codes", "", operator)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Codes []user.RegistrationCode `json:"codes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Codes, 1)

	store.EXPECT().GetCode(mock.Anything, "LAUNCH").
		Return(&user.RegistrationCode{Code: "LAUNCH", Status: user.StatusActive, MaxUses: 10}, nil)
	store.EXPECT().UpdateCode(mock.Anything, mock.Anything).Return(nil)
	rec = do(t, h, http.MethodPatch, "/admin/codes/launch", `{"status":"inactive"}`, operator)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated user.RegistrationCode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, user.StatusInactive, updated.Status)

	store.EXPECT().DeleteCode(mock.Anything, "LAUNCH").Return(nil)
	rec = do(t, h, http.MethodDelete, "/admin/codes/launch", "", operator)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
