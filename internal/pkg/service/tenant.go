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
	"github.com/tastebite/tastebite-service/internal/utils"
)

type TenantSubmission struct {
	models.TenantUpdate
	Slug string `json:"slug"`
}

type Tenant interface {
	Submit(ctx context.Context, identity models.Identity, sub TenantSubmission) (models.Tenant, error)
	Get(ctx context.Context, id string) (models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (models.Tenant, error)
	MyTenant(ctx context.Context, identity models.Identity) (models.Tenant, error)
	List(ctx context.Context, identity models.Identity, status models.TenantStatus) ([]models.Tenant, error)
	UpdateProfile(ctx context.Context, identity models.Identity, id string, upd models.TenantUpdate) error
	Approve(ctx context.Context, identity models.Identity, id string) error
	Suspend(ctx context.Context, identity models.Identity, id string) error
	RequireStorefront(ctx context.Context, tenantID string) (models.Tenant, error)
	PlatformAnalytics(ctx context.Context, identity models.Identity) (models.PlatformStats, error)
	TenantAnalytics(ctx context.Context, identity models.Identity, tenantID string) (models.TenantStats, error)
}

type TenantService struct {
	repo     repository.TenantRepository
	orders   repository.OrderRepository
	menu     repository.MenuRepository
	users    repository.AuthorizationRepository
	notifier Notifier
}

func NewTenantService(repo repository.TenantRepository, orders repository.OrderRepository,
	menu repository.MenuRepository, users repository.AuthorizationRepository, notifier Notifier) *TenantService {
	return &TenantService{repo: repo, orders: orders, menu: menu, users: users, notifier: notifier}
}

var defaultCommissionRate = decimal.RequireFromString("10.00")

func (ts *TenantService) Submit(ctx context.Context, identity models.Identity, sub TenantSubmission) (models.Tenant, error) {
	if err := Authorize(identity, ActionTenantSubmit); err != nil {
		return models.Tenant{}, err
	}
	if sub.Name == "" {
		return models.Tenant{}, fmt.Errorf("%w: tenant name is required", apperrors.ErrValidation)
	}

	slug := utils.NormalizeSlug(sub.Slug)
	if slug == "" {
		slug = utils.NormalizeSlug(sub.Name)
	}
	if !utils.IsValidSlug(slug) {
		return models.Tenant{}, fmt.Errorf("%w: invalid slug %q", apperrors.ErrValidation, sub.Slug)
	}

	now := time.Now().UTC()
	tenant := models.Tenant{
		ID:             uuid.NewString(),
		OwnerID:        identity.ID,
		Name:           sub.Name,
		Slug:           slug,
		Description:    sub.Description,
		CuisineTypes:   sub.CuisineTypes,
		Address:        sub.Address,
		Phone:          sub.Phone,
		Logo:           sub.Logo,
		CoverImage:     sub.CoverImage,
		CommissionRate: defaultCommissionRate,
		Status:         models.TenantPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := ts.repo.CreateTenant(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return models.Tenant{}, apperrors.ErrDuplicateSlug
		}
		return models.Tenant{}, err
	}

	if err := ts.users.SetUserTenant(ctx, identity.ID, tenant.ID); err != nil {
		return models.Tenant{}, err
	}
	return tenant, nil
}

func (ts *TenantService) Get(ctx context.Context, id string) (models.Tenant, error) {
	tenant, err := ts.repo.GetTenant(ctx, id)
	if errors.Is(err, repository.ErrTenantNotFound) {
		return models.Tenant{}, apperrors.ErrNotFound
	}
	return tenant, err
}

func (ts *TenantService) GetBySlug(ctx context.Context, slug string) (models.Tenant, error) {
	tenant, err := ts.repo.GetTenantBySlug(ctx, slug)
	if errors.Is(err, repository.ErrTenantNotFound) {
		return models.Tenant{}, apperrors.ErrNotFound
	}
	return tenant, err
}

// MyTenant is the owner's read-only view, available in every lifecycle state.
func (ts *TenantService) MyTenant(ctx context.Context, identity models.Identity) (models.Tenant, error) {
	if identity.ID == "" {
		return models.Tenant{}, apperrors.ErrUnauthenticated
	}
	if identity.Role != models.RoleTenantOwner {
		return models.Tenant{}, apperrors.ErrForbidden
	}

	tenant, err := ts.repo.GetTenantByOwner(ctx, identity.ID)
	if errors.Is(err, repository.ErrTenantNotFound) {
		return models.Tenant{}, apperrors.ErrNotFound
	}
	return tenant, err
}

// List restricts non-admin callers to active tenants; an admin may filter by
// any status or request all.
func (ts *TenantService) List(ctx context.Context, identity models.Identity, status models.TenantStatus) ([]models.Tenant, error) {
	if !identity.IsAdmin() {
		status = models.TenantActive
	}
	return ts.repo.ListTenants(ctx, status)
}

func (ts *TenantService) UpdateProfile(ctx context.Context, identity models.Identity, id string, upd models.TenantUpdate) error {
	tenant, err := ts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeTenant(identity, ActionTenantUpdate, tenant); err != nil {
		return err
	}
	if tenant.Status == models.TenantSuspended && !identity.IsAdmin() {
		return apperrors.ErrTenantUnavailable
	}
	return ts.repo.UpdateTenantProfile(ctx, id, upd)
}

func (ts *TenantService) Approve(ctx context.Context, identity models.Identity, id string) error {
	if err := Authorize(identity, ActionTenantApprove); err != nil {
		return err
	}

	tenant, err := ts.Get(ctx, id)
	if err != nil {
		return err
	}
	if !tenant.CanApprove() {
		return fmt.Errorf("%w: cannot approve tenant in state %q", apperrors.ErrInvalidTransition, tenant.Status)
	}

	ok, err := ts.repo.UpdateTenantStatus(ctx, id, tenant.Status, models.TenantActive)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: tenant state changed concurrently", apperrors.ErrInvalidTransition)
	}

	ts.notifier.Emit(ctx, EventTenantApproved, map[string]string{"tenant_id": id})
	return nil
}

func (ts *TenantService) Suspend(ctx context.Context, identity models.Identity, id string) error {
	if err := Authorize(identity, ActionTenantSuspend); err != nil {
		return err
	}

	tenant, err := ts.Get(ctx, id)
	if err != nil {
		return err
	}
	if !tenant.CanSuspend() {
		return fmt.Errorf("%w: cannot suspend tenant in state %q", apperrors.ErrInvalidTransition, tenant.Status)
	}

	ok, err := ts.repo.UpdateTenantStatus(ctx, id, tenant.Status, models.TenantSuspended)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: tenant state changed concurrently", apperrors.ErrInvalidTransition)
	}

	ts.notifier.Emit(ctx, EventTenantSuspended, map[string]string{"tenant_id": id})
	return nil
}

// RequireStorefront gates every customer-facing path on tenant visibility.
func (ts *TenantService) RequireStorefront(ctx context.Context, tenantID string) (models.Tenant, error) {
	tenant, err := ts.Get(ctx, tenantID)
	if err != nil {
		return models.Tenant{}, err
	}
	if !tenant.StorefrontVisible() {
		return models.Tenant{}, apperrors.ErrTenantUnavailable
	}
	return tenant, nil
}

func (ts *TenantService) PlatformAnalytics(ctx context.Context, identity models.Identity) (models.PlatformStats, error) {
	if err := Authorize(identity, ActionPlatformAnalytics); err != nil {
		return models.PlatformStats{}, err
	}

	counts, err := ts.repo.TenantCounts(ctx)
	if err != nil {
		return models.PlatformStats{}, err
	}

	totalOrders, revenue, commission, err := ts.orders.PlatformOrderStats(ctx)
	if err != nil {
		return models.PlatformStats{}, err
	}

	return models.PlatformStats{
		TotalTenants:     counts[models.TenantPending] + counts[models.TenantActive] + counts[models.TenantSuspended],
		ActiveTenants:    counts[models.TenantActive],
		PendingTenants:   counts[models.TenantPending],
		SuspendedTenants: counts[models.TenantSuspended],
		TotalOrders:      totalOrders,
		TotalRevenue:     revenue,
		TotalCommission:  commission,
	}, nil
}

func (ts *TenantService) TenantAnalytics(ctx context.Context, identity models.Identity, tenantID string) (models.TenantStats, error) {
	tenant, err := ts.Get(ctx, tenantID)
	if err != nil {
		return models.TenantStats{}, err
	}
	if err := AuthorizeTenant(identity, ActionTenantAnalytics, tenant); err != nil {
		return models.TenantStats{}, err
	}

	stats, err := ts.orders.TenantOrderStats(ctx, tenantID)
	if err != nil {
		return models.TenantStats{}, err
	}

	stats.MenuItemsCount, err = ts.menu.CountMenuItems(ctx, tenantID)
	return stats, err
}
