package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type TenantHandler struct {
	tenants service.Tenant
}

func NewTenantHandler(tenants service.Tenant) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

func (h *TenantHandler) SubmitTenantHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var sub service.TenantSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tenant, err := h.tenants.Submit(r.Context(), identity, sub)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, tenant)
}

func (h *TenantHandler) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	identity, _ := GetIdentity(r)
	status := models.TenantStatus(r.URL.Query().Get("status"))

	tenants, err := h.tenants.List(r.Context(), identity, status)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, tenants)
}

func (h *TenantHandler) GetTenantHandler(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.tenants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, tenant)
}

func (h *TenantHandler) GetTenantBySlugHandler(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.tenants.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, tenant)
}

func (h *TenantHandler) MyTenantHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	tenant, err := h.tenants.MyTenant(r.Context(), identity)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, tenant)
}

func (h *TenantHandler) UpdateTenantHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	var upd models.TenantUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.tenants.UpdateProfile(r.Context(), identity, chi.URLParam(r, "id"), upd); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "tenant updated"})
}

func (h *TenantHandler) ApproveTenantHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tenants.Approve, "tenant approved")
}

func (h *TenantHandler) SuspendTenantHandler(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tenants.Suspend, "tenant suspended")
}

func (h *TenantHandler) transition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, identity models.Identity, id string) error, msg string) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	if err := fn(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": msg})
}

func (h *TenantHandler) PlatformAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	stats, err := h.tenants.PlatformAnalytics(r.Context(), identity)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

func (h *TenantHandler) TenantAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r)
	if !ok {
		renderError(w, r, apperrors.ErrUnauthenticated)
		return
	}

	stats, err := h.tenants.TenantAnalytics(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}
