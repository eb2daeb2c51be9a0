package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/logger"
	"github.com/tastebite/tastebite-service/internal/middleware"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type Handler struct {
	authSvc service.Authorization

	auth    *AuthHandler
	tenant  *TenantHandler
	menu    *MenuHandler
	cart    *CartHandler
	order   *OrderHandler
	payment *PaymentHandler
}

func NewHandler(s *service.Service) *Handler {
	return &Handler{
		authSvc: s.Authorization,
		auth:    NewAuthHandler(s.Authorization),
		tenant:  NewTenantHandler(s.Tenant),
		menu:    NewMenuHandler(s.Menu),
		cart:    NewCartHandler(s.Cart),
		order:   NewOrderHandler(s.Order),
		payment: NewPaymentHandler(s.Payment),
	}
}

func (h *Handler) InitApiRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.LoggingReqResMiddleware(logger.Log))
	r.Use(middleware.CompressGzipMiddleware())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.auth.RegisterUserHandler)
		r.Post("/auth/login", h.auth.LoginHandler)

		r.Get("/tenants", h.tenant.ListTenantsHandler)
		r.Get("/tenants/slug/{slug}", h.tenant.GetTenantBySlugHandler)
		r.Get("/tenants/{id}", h.tenant.GetTenantHandler)
		r.Get("/tenants/{id}/menu/items", h.menu.BrowseMenuHandler)

		r.Group(func(r chi.Router) {
			r.Use(AuthenticateMiddleware(h.authSvc))

			r.Get("/auth/me", h.auth.CurrentUserHandler)

			r.Post("/tenants", h.tenant.SubmitTenantHandler)
			r.Get("/tenants/my/tenant", h.tenant.MyTenantHandler)
			r.Put("/tenants/{id}", h.tenant.UpdateTenantHandler)
			r.Post("/tenants/{id}/menu/items", h.menu.CreateMenuItemHandler)
			r.Get("/tenants/{id}/orders", h.order.TenantOrdersHandler)
			r.Put("/tenants/{tenantID}/orders/{orderID}/status", h.order.UpdateOrderStatusHandler)
			r.Get("/tenants/{id}/analytics", h.tenant.TenantAnalyticsHandler)

			r.Put("/admin/tenants/{id}/approve", h.tenant.ApproveTenantHandler)
			r.Put("/admin/tenants/{id}/suspend", h.tenant.SuspendTenantHandler)
			r.Get("/admin/analytics", h.tenant.PlatformAnalyticsHandler)

			r.Get("/cart", h.cart.GetCartHandler)
			r.Post("/cart/add", h.cart.AddItemHandler)
			r.Put("/cart/update/{lineID}", h.cart.UpdateQuantityHandler)
			r.Delete("/cart/remove/{lineID}", h.cart.RemoveItemHandler)
			r.Delete("/cart/clear", h.cart.ClearCartHandler)

			r.Post("/orders/create", h.order.CreateOrderHandler)
			r.Get("/orders", h.order.UserOrdersHandler)
			r.Get("/orders/{id}", h.order.GetOrderHandler)

			r.Post("/payments/checkout", h.payment.CheckoutHandler)
			r.Get("/payments/status/{sessionID}", h.payment.StatusHandler)
		})
	})

	return r
}

// ErrResponse is the wire shape of every failure.
type ErrResponse struct {
	Kind           string `json:"kind"`
	Message        string `json:"message"`
	HTTPStatusCode int    `json:"-"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.Sugar.Errorf("internal error on %s %s: %v", r.Method, r.URL.Path, err)
	}

	_ = render.Render(w, r, &ErrResponse{
		Kind:           apperrors.Kind(err),
		Message:        err.Error(),
		HTTPStatusCode: code,
	})
}
