package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
)

type MenuItemInput struct {
	Name            string                   `json:"name"`
	Description     string                   `json:"description"`
	Category        string                   `json:"category"`
	Image           string                   `json:"image"`
	IsVeg           bool                     `json:"is_veg"`
	SpiceLevel      int                      `json:"spice_level"`
	DiscountPercent decimal.Decimal          `json:"discount_percent"`
	Variants        []models.MenuItemVariant `json:"variants"`
}

type Menu interface {
	CreateItem(ctx context.Context, identity models.Identity, tenantID string, input MenuItemInput) (models.MenuItem, error)
	Browse(ctx context.Context, tenantID string) ([]models.MenuItem, error)
	GetItem(ctx context.Context, tenantID, itemID string) (models.MenuItem, error)
}

type MenuService struct {
	repo    repository.MenuRepository
	tenants Tenant
}

func NewMenuService(repo repository.MenuRepository, tenants Tenant) *MenuService {
	return &MenuService{repo: repo, tenants: tenants}
}

func (ms *MenuService) CreateItem(ctx context.Context, identity models.Identity, tenantID string, input MenuItemInput) (models.MenuItem, error) {
	tenant, err := ms.tenants.Get(ctx, tenantID)
	if err != nil {
		return models.MenuItem{}, err
	}
	if err := AuthorizeTenant(identity, ActionMenuManage, tenant); err != nil {
		return models.MenuItem{}, err
	}

	if input.Name == "" {
		return models.MenuItem{}, fmt.Errorf("%w: item name is required", apperrors.ErrValidation)
	}
	if len(input.Variants) == 0 {
		return models.MenuItem{}, fmt.Errorf("%w: at least one variant is required", apperrors.ErrValidation)
	}
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(hundred) {
		return models.MenuItem{}, fmt.Errorf("%w: discount must be between 0 and 100", apperrors.ErrValidation)
	}

	item := models.MenuItem{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Image:           input.Image,
		IsVeg:           input.IsVeg,
		SpiceLevel:      input.SpiceLevel,
		DiscountPercent: input.DiscountPercent,
		Variants:        input.Variants,
		IsAvailable:     true,
		CreatedAt:       time.Now().UTC(),
	}

	if err := ms.repo.CreateMenuItem(ctx, item); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// Browse is storefront-facing and therefore gated on tenant visibility.
func (ms *MenuService) Browse(ctx context.Context, tenantID string) ([]models.MenuItem, error) {
	if _, err := ms.tenants.RequireStorefront(ctx, tenantID); err != nil {
		return nil, err
	}
	return ms.repo.ListMenuItems(ctx, tenantID)
}

func (ms *MenuService) GetItem(ctx context.Context, tenantID, itemID string) (models.MenuItem, error) {
	item, err := ms.repo.GetMenuItem(ctx, tenantID, itemID)
	if errors.Is(err, repository.ErrMenuItemNotFound) {
		return models.MenuItem{}, apperrors.ErrNotFound
	}
	return item, err
}
