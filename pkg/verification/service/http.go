package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/usdt-payout-verifier/pkg/app/http"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// VerifyResponse is the body returned by POST /verifications
type VerifyResponse struct {
	Verified bool                 `json:"verified"`
	Result   *verification.Result `json:"result,omitempty"`
}

// RegisterRoutes registers HTTP endpoints for the verification service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/verifications", apphttp.HandleError(h.verify))
}

// verify runs a one-shot verification. An unverified transaction is not an
// error: the response carries verified=false. So does running out of request
// time before the retry schedule finishes.
func (h *HTTP) verify(w http.ResponseWriter, r *http.Request) error {
	var req verification.Request
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	result, err := h.service.VerifyTransactionByHash(r.Context(), &req)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, &VerifyResponse{
		Verified: result != nil,
		Result:   result,
	})
	return nil
}
