package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type CartHandler struct {
	cart service.Cart
}

func NewCartHandler(cart service.Cart) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	view, err := h.cart.Get(r.Context(), identity)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

func (h *CartHandler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var input service.AddItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	line, err := h.cart.Add(r.Context(), identity, input)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, line)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantityHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cart.SetQuantity(r.Context(), identity, chi.URLParam(r, "lineID"), req.Quantity); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "cart updated"})
}

func (h *CartHandler) RemoveItemHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	if err := h.cart.Remove(r.Context(), identity, chi.URLParam(r, "lineID")); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "item removed"})
}

func (h *CartHandler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	if err := h.cart.Clear(r.Context(), identity); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "cart cleared"})
}
