package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
)

type CreateOrderInput struct {
	TenantID        string `json:"tenant_id"`
	DeliveryAddress string `json:"delivery_address"`
}

type Order interface {
	Create(ctx context.Context, identity models.Identity, input CreateOrderInput) (models.Order, error)
	List(ctx context.Context, identity models.Identity) ([]models.Order, error)
	Get(ctx context.Context, identity models.Identity, orderID string) (models.Order, error)
	ListForTenant(ctx context.Context, identity models.Identity, tenantID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, identity models.Identity, orderID string, newStatus models.OrderStatus) error
}

type OrderService struct {
	repo     repository.OrderRepository
	cart     repository.CartRepository
	tenants  Tenant
	notifier Notifier
}

func NewOrderService(repo repository.OrderRepository, cart repository.CartRepository,
	tenants Tenant, notifier Notifier) *OrderService {
	return &OrderService{repo: repo, cart: cart, tenants: tenants, notifier: notifier}
}

// Create freezes the customer's cart for the tenant into an immutable order.
// Unit prices come from the cart snapshots, never from the live menu, and the
// cart is cleared in the same transaction that persists the order.
func (os *OrderService) Create(ctx context.Context, identity models.Identity, input CreateOrderInput) (models.Order, error) {
	if err := Authorize(identity, ActionOrderCreate); err != nil {
		return models.Order{}, err
	}

	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return models.Order{}, apperrors.ErrInvalidAddress
	}

	tenant, err := os.tenants.RequireStorefront(ctx, input.TenantID)
	if err != nil {
		return models.Order{}, err
	}

	lines, err := os.cart.ListLines(ctx, identity.ID)
	if err != nil {
		return models.Order{}, err
	}

	var tenantLines []models.CartLine
	for _, line := range lines {
		if line.TenantID == input.TenantID {
			tenantLines = append(tenantLines, line)
		}
	}
	if len(tenantLines) == 0 {
		return models.Order{}, apperrors.ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(tenantLines))
	for _, line := range tenantLines {
		items = append(items, models.OrderItem{
			MenuItemID:  line.MenuItemID,
			Name:        line.Snapshot.Name,
			VariantName: line.VariantName,
			Quantity:    line.Quantity,
			UnitPrice:   EffectivePrice(line.Snapshot.BasePrice, line.Snapshot.DiscountPercent),
		})
	}

	total := CartTotal(tenantLines)
	commission := total.Mul(tenant.CommissionRate.Div(hundred)).Round(2)

	now := time.Now().UTC()
	order := models.Order{
		ID:               uuid.NewString(),
		CustomerID:       identity.ID,
		TenantID:         input.TenantID,
		Items:            items,
		TotalAmount:      total,
		CommissionAmount: commission,
		TenantAmount:     total.Sub(commission),
		DeliveryAddress:  strings.TrimSpace(input.DeliveryAddress),
		Status:           models.OrderCreated,
		PaymentStatus:    models.PaymentPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := os.repo.CreateOrderAndClearCart(ctx, order); err != nil {
		return models.Order{}, err
	}

	os.notifier.Emit(ctx, EventOrderPlaced, map[string]string{
		"order_id":  order.ID,
		"tenant_id": order.TenantID,
	})
	return order, nil
}

func (os *OrderService) List(ctx context.Context, identity models.Identity) ([]models.Order, error) {
	if identity.ID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return os.repo.ListOrdersByCustomer(ctx, identity.ID)
}

// Get hides orders of other customers behind not-found, so callers cannot
// probe for order existence.
func (os *OrderService) Get(ctx context.Context, identity models.Identity, orderID string) (models.Order, error) {
	if identity.ID == "" {
		return models.Order{}, apperrors.ErrUnauthenticated
	}

	order, err := os.repo.GetOrder(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return models.Order{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	if order.CustomerID != identity.ID && !identity.IsAdmin() {
		return models.Order{}, apperrors.ErrNotFound
	}
	return order, nil
}

func (os *OrderService) ListForTenant(ctx context.Context, identity models.Identity, tenantID string) ([]models.Order, error) {
	tenant, err := os.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeTenant(identity, ActionOrderUpdateStatus, tenant); err != nil {
		return nil, err
	}
	return os.repo.ListOrdersByTenant(ctx, tenantID)
}

// UpdateStatus moves an order forward along its lifecycle, or cancels it.
// Backward moves are rejected, and the compare-and-set keyed by the observed
// status keeps concurrent operators from double-applying a transition.
func (os *OrderService) UpdateStatus(ctx context.Context, identity models.Identity, orderID string, newStatus models.OrderStatus) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, newStatus)
	}

	order, err := os.repo.GetOrder(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}

	tenant, err := os.tenants.Get(ctx, order.TenantID)
	if err != nil {
		return err
	}
	if err := AuthorizeTenant(identity, ActionOrderUpdateStatus, tenant); err != nil {
		return err
	}

	if !order.Status.CanTransition(newStatus) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.Status, newStatus)
	}

	ok, err := os.repo.UpdateOrderStatus(ctx, orderID, order.Status, newStatus)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: order status changed concurrently", apperrors.ErrInvalidTransition)
	}

	os.notifier.Emit(ctx, EventOrderStatusChanged, map[string]string{
		"order_id": orderID,
		"status":   string(newStatus),
	})
	return nil
}
