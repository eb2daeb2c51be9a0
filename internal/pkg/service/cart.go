package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
)

type AddItemInput struct {
	TenantID    string `json:"tenant_id"`
	MenuItemID  string `json:"menu_item_id"`
	VariantName string `json:"variant_name"`
	Quantity    int    `json:"quantity"`
}

type CartView struct {
	Lines []models.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
}

type Cart interface {
	Add(ctx context.Context, identity models.Identity, input AddItemInput) (models.CartLine, error)
	SetQuantity(ctx context.Context, identity models.Identity, lineID string, qty int) error
	Remove(ctx context.Context, identity models.Identity, lineID string) error
	Clear(ctx context.Context, identity models.Identity) error
	Get(ctx context.Context, identity models.Identity) (CartView, error)
}

type CartService struct {
	repo     repository.CartRepository
	menu     Menu
	tenants  Tenant
	notifier Notifier
}

func NewCartService(repo repository.CartRepository, menu Menu, tenants Tenant, notifier Notifier) *CartService {
	return &CartService{repo: repo, menu: menu, tenants: tenants, notifier: notifier}
}

// Add merges repeat adds of the same (menu item, variant) pair into one line
// instead of duplicating it. The pricing snapshot is captured here and reused
// unchanged at checkout.
func (cs *CartService) Add(ctx context.Context, identity models.Identity, input AddItemInput) (models.CartLine, error) {
	if err := Authorize(identity, ActionCartMutate); err != nil {
		return models.CartLine{}, err
	}

	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return models.CartLine{}, apperrors.ErrInvalidQuantity
	}

	if _, err := cs.tenants.RequireStorefront(ctx, input.TenantID); err != nil {
		return models.CartLine{}, err
	}

	item, err := cs.menu.GetItem(ctx, input.TenantID, input.MenuItemID)
	if err != nil {
		return models.CartLine{}, err
	}

	variant, ok := item.Variant(input.VariantName)
	if !ok || !variant.Available {
		return models.CartLine{}, apperrors.ErrInvalidVariant
	}

	existing, err := cs.repo.FindLine(ctx, identity.ID, input.MenuItemID, input.VariantName)
	switch {
	case err == nil:
		existing.Quantity += qty
		if err := cs.repo.UpdateQuantity(ctx, identity.ID, existing.ID, existing.Quantity); err != nil {
			return models.CartLine{}, err
		}
		cs.notifier.Emit(ctx, EventCartUpdated, map[string]string{"customer_id": identity.ID})
		return existing, nil

	case errors.Is(err, repository.ErrCartLineNotFound):
		line := models.CartLine{
			ID:          uuid.NewString(),
			CustomerID:  identity.ID,
			TenantID:    input.TenantID,
			MenuItemID:  input.MenuItemID,
			VariantName: input.VariantName,
			Quantity:    qty,
			Snapshot:    item.Snapshot(variant),
			AddedAt:     time.Now().UTC(),
		}
		if err := cs.repo.InsertLine(ctx, line); err != nil {
			return models.CartLine{}, err
		}
		cs.notifier.Emit(ctx, EventCartUpdated, map[string]string{"customer_id": identity.ID})
		return line, nil

	default:
		return models.CartLine{}, err
	}
}

// SetQuantity with a non-positive quantity removes the line; a quantity below
// one is never stored.
func (cs *CartService) SetQuantity(ctx context.Context, identity models.Identity, lineID string, qty int) error {
	if err := Authorize(identity, ActionCartMutate); err != nil {
		return err
	}

	if qty <= 0 {
		return cs.Remove(ctx, identity, lineID)
	}

	if err := cs.repo.UpdateQuantity(ctx, identity.ID, lineID, qty); err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	cs.notifier.Emit(ctx, EventCartUpdated, map[string]string{"customer_id": identity.ID})
	return nil
}

func (cs *CartService) Remove(ctx context.Context, identity models.Identity, lineID string) error {
	if err := Authorize(identity, ActionCartMutate); err != nil {
		return err
	}

	if err := cs.repo.DeleteLine(ctx, identity.ID, lineID); err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	cs.notifier.Emit(ctx, EventCartUpdated, map[string]string{"customer_id": identity.ID})
	return nil
}

func (cs *CartService) Clear(ctx context.Context, identity models.Identity) error {
	if err := Authorize(identity, ActionCartMutate); err != nil {
		return err
	}

	if err := cs.repo.ClearCart(ctx, identity.ID); err != nil {
		return err
	}

	cs.notifier.Emit(ctx, EventCartUpdated, map[string]string{"customer_id": identity.ID})
	return nil
}

func (cs *CartService) Get(ctx context.Context, identity models.Identity) (CartView, error) {
	if identity.ID == "" {
		return CartView{}, apperrors.ErrUnauthenticated
	}

	lines, err := cs.repo.ListLines(ctx, identity.ID)
	if err != nil {
		return CartView{}, err
	}

	return CartView{Lines: lines, Total: CartTotal(lines)}, nil
}
