package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type OrderHandler struct {
	orders service.Order
}

func NewOrderHandler(orders service.Order) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var input service.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.orders.Create(r.Context(), identity, input)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, order)
}

func (h *OrderHandler) UserOrdersHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	orders, err := h.orders.List(r.Context(), identity)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, orders)
}

func (h *OrderHandler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	order, err := h.orders.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, order)
}

func (h *OrderHandler) TenantOrdersHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	orders, err := h.orders.ListForTenant(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, orders)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), identity, chi.URLParam(r, "orderID"), req.Status); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "order status updated"})
}
