package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type MenuHandler struct {
	menu service.Menu
}

func NewMenuHandler(menu service.Menu) *MenuHandler {
	return &MenuHandler{menu: menu}
}

func (h *MenuHandler) BrowseMenuHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.Browse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

func (h *MenuHandler) CreateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var input service.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.menu.CreateItem(r.Context(), identity, chi.URLParam(r, "id"), input)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}
