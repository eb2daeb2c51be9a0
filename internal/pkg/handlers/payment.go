package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type PaymentHandler struct {
	payments service.Payment
}

func NewPaymentHandler(payments service.Payment) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type checkoutRequest struct {
	OrderID string `json:"order_id"`
}

// CheckoutHandler opens a gateway session and returns immediately; the
// reconciliation loop continues server-side whether or not the client waits.
func (h *PaymentHandler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.payments.Checkout(r.Context(), identity, req.OrderID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, session)
}

func (h *PaymentHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	view, err := h.payments.Status(r.Context(), identity, chi.URLParam(r, "sessionID"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}
