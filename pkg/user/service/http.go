package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/usdt-payout-verifier/pkg/app/http"
	"github.com/chainsafe/usdt-payout-verifier/pkg/user"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the user service on the given chi router.
// Registration code management is mounted under /admin/codes behind operatorAuth;
// when operatorAuth is nil those routes are not registered.
func RegisterRoutes(r chi.Router, service Service, operatorAuth func(http.Handler) http.Handler, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/users", func(r chi.Router) {
		r.Post("/", apphttp.HandleError(h.register))
		r.Get("/{id}", apphttp.HandleError(h.get))
	})

	if operatorAuth == nil {
		logger.Warn("operator authentication not configured, admin registration code routes disabled")
		return
	}

	r.Route("/admin/codes", func(r chi.Router) {
		r.Use(operatorAuth)
		r.Post("/", apphttp.HandleError(h.createCode))
		r.Get("/", apphttp.HandleError(h.listCodes))
		r.Patch("/{code}", apphttp.HandleError(h.updateCode))
		r.Delete("/{code}", apphttp.HandleError(h.deleteCode))
	})
}

func (h *HTTP) register(w http.ResponseWriter, r *http.Request) error {
	var req user.RegisterRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	usr, err := h.service.RegisterUser(r.Context(), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusCreated, usr)
	return nil
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) error {
	usr, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, usr)
	return nil
}

func (h *HTTP) createCode(w http.ResponseWriter, r *http.Request) error {
	var req user.CreateCodeRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	c, err := h.service.CreateCode(r.Context(), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusCreated, c)
	return nil
}

func (h *HTTP) listCodes(w http.ResponseWriter, r *http.Request) error {
	codes, err := h.service.ListCodes(r.Context())
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, map[string]any{"codes": codes})
	return nil
}

func (h *HTTP) updateCode(w http.ResponseWriter, r *http.Request) error {
	var req user.UpdateCodeRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	c, err := h.service.UpdateCode(r.Context(), chi.URLParam(r, "code"), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, c)
	return nil
}

func (h *HTTP) deleteCode(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteCode(r.Context(), chi.URLParam(r, "code")); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
