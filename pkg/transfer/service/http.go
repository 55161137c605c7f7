package service

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	apphttp "github.com/chainsafe/usdt-payout-verifier/pkg/app/http"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the transfer service on the given chi router.
// Operator endpoints are mounted under /admin behind operatorAuth; when operatorAuth
// is nil they are not registered.
func RegisterRoutes(r chi.Router, service Service, operatorAuth func(http.Handler) http.Handler, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/transfers", func(r chi.Router) {
		r.Post("/", apphttp.HandleError(h.create))
		r.Get("/{id}", apphttp.HandleError(h.get))
		r.Post("/{id}/transaction", apphttp.HandleError(h.submit))
		r.Post("/{id}/cancel", apphttp.HandleError(h.cancel))
	})

	if operatorAuth == nil {
		logger.Warn("operator authentication not configured, admin transfer routes disabled")
		return
	}

	r.Route("/admin/transfers", func(r chi.Router) {
		r.Use(operatorAuth)
		r.Get("/", apphttp.HandleError(h.list))
		r.Post("/{id}/complete", apphttp.HandleError(h.complete))
		r.Post("/{id}/reject", apphttp.HandleError(h.reject))
	})
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) error {
	var req transfer.CreateRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	t, err := h.service.CreateTransfer(r.Context(), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusCreated, t)
	return nil
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) error {
	id, err := transferID(r)
	if err != nil {
		return err
	}

	t, err := h.service.GetTransfer(r.Context(), id)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, t)
	return nil
}

func (h *HTTP) submit(w http.ResponseWriter, r *http.Request) error {
	id, err := transferID(r)
	if err != nil {
		return err
	}

	var req transfer.SubmitRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	t, err := h.service.SubmitTransaction(r.Context(), id, &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, t)
	return nil
}

func (h *HTTP) cancel(w http.ResponseWriter, r *http.Request) error {
	id, err := transferID(r)
	if err != nil {
		return err
	}

	t, err := h.service.CancelTransfer(r.Context(), id)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, t)
	return nil
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	filter := transfer.ListFilter{
		Status: transfer.Status(q.Get("status")),
		UserID: q.Get("user_id"),
	}

	var err error
	if filter.Page, err = intParam(q.Get("page")); err != nil {
		return apperrors.BadRequestError(err, "invalid page")
	}
	if filter.PerPage, err = intParam(q.Get("per_page")); err != nil {
		return apperrors.BadRequestError(err, "invalid per_page")
	}

	page, err := h.service.ListTransfers(r.Context(), filter)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, page)
	return nil
}

func (h *HTTP) complete(w http.ResponseWriter, r *http.Request) error {
	id, err := transferID(r)
	if err != nil {
		return err
	}

	var req transfer.CompleteRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	t, err := h.service.CompleteTransfer(r.Context(), id, &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, t)
	return nil
}

func (h *HTTP) reject(w http.ResponseWriter, r *http.Request) error {
	id, err := transferID(r)
	if err != nil {
		return err
	}

	var req transfer.RejectRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	t, err := h.service.RejectTransfer(r.Context(), id, &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, t)
	return nil
}

func transferID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.BadRequestError(err, "invalid transfer id")
	}
	return id, nil
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
