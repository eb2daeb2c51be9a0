package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/mocks"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type cartMocks struct {
	repo    *mocks.MockCartRepository
	menu    *mocks.MockMenu
	tenants *mocks.MockTenant
}

func newCartService(ctrl *gomock.Controller) (*service.CartService, cartMocks) {
	cm := cartMocks{
		repo:    mocks.NewMockCartRepository(ctrl),
		menu:    mocks.NewMockMenu(ctrl),
		tenants: mocks.NewMockTenant(ctrl),
	}
	return service.NewCartService(cm.repo, cm.menu, cm.tenants, service.NopNotifier{}), cm
}

var testMenuItem = models.MenuItem{
	ID:              "item-1",
	TenantID:        "t1",
	Name:            "Paneer Tikka",
	DiscountPercent: decimal.RequireFromString("10"),
	Variants: []models.MenuItemVariant{
		{Name: "half", Price: decimal.RequireFromString("120"), Available: true},
		{Name: "full", Price: decimal.RequireFromString("200"), Available: true},
		{Name: "family", Price: decimal.RequireFromString("350"), Available: false},
	},
	IsAvailable: true,
}

func TestCartAddNewLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cm := newCartService(ctrl)
	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}

	cm.tenants.EXPECT().RequireStorefront(gomock.Any(), "t1").
		Return(models.Tenant{ID: "t1", Status: models.TenantActive}, nil)
	cm.menu.EXPECT().GetItem(gomock.Any(), "t1", "item-1").Return(testMenuItem, nil)
	cm.repo.EXPECT().FindLine(gomock.Any(), "cust-1", "item-1", "full").
		Return(models.CartLine{}, repository.ErrCartLineNotFound)
	cm.repo.EXPECT().InsertLine(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, line models.CartLine) error {
			assert.Equal(t, "cust-1", line.CustomerID)
			assert.Equal(t, 2, line.Quantity)
			assert.Equal(t, "Paneer Tikka", line.Snapshot.Name)
			assert.Equal(t, "200", line.Snapshot.BasePrice.String())
			assert.Equal(t, "10", line.Snapshot.DiscountPercent.String())
			return nil
		})

	line, err := svc.Add(context.Background(), customer, service.AddItemInput{
		TenantID:    "t1",
		MenuItemID:  "item-1",
		VariantName: "full",
		Quantity:    2,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, line.ID)
}

// Adding the same (item, variant) pair again merges into the existing line
// instead of duplicating it.
func TestCartAddMergesRepeat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cm := newCartService(ctrl)
	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}

	existing := models.CartLine{
		ID:          "line-1",
		CustomerID:  "cust-1",
		TenantID:    "t1",
		MenuItemID:  "item-1",
		VariantName: "full",
		Quantity:    1,
	}

	cm.tenants.EXPECT().RequireStorefront(gomock.Any(), "t1").
		Return(models.Tenant{ID: "t1", Status: models.TenantActive}, nil)
	cm.menu.EXPECT().GetItem(gomock.Any(), "t1", "item-1").Return(testMenuItem, nil)
	cm.repo.EXPECT().FindLine(gomock.Any(), "cust-1", "item-1", "full").Return(existing, nil)
	cm.repo.EXPECT().UpdateQuantity(gomock.Any(), "cust-1", "line-1", 3).Return(nil)

	line, err := svc.Add(context.Background(), customer, service.AddItemInput{
		TenantID:    "t1",
		MenuItemID:  "item-1",
		VariantName: "full",
		Quantity:    2,
	})

	assert.NoError(t, err)
	assert.Equal(t, "line-1", line.ID)
	assert.Equal(t, 3, line.Quantity)
}

func TestCartAddRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cm := newCartService(ctrl)
	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}

	tests := []struct {
		name      string
		identity  models.Identity
		input     service.AddItemInput
		mockSetup func()
		wantErr   error
	}{
		{
			name:      "owner role cannot shop",
			identity:  models.Identity{ID: "own-1", Role: models.RoleTenantOwner},
			input:     service.AddItemInput{TenantID: "t1", MenuItemID: "item-1"},
			mockSetup: func() {},
			wantErr:   apperrors.ErrForbidden,
		},
		{
			name:      "negative quantity",
			identity:  customer,
			input:     service.AddItemInput{TenantID: "t1", MenuItemID: "item-1", Quantity: -1},
			mockSetup: func() {},
			wantErr:   apperrors.ErrInvalidQuantity,
		},
		{
			name:     "suspended storefront",
			identity: customer,
			input:    service.AddItemInput{TenantID: "t-down", MenuItemID: "item-1", Quantity: 1},
			mockSetup: func() {
				cm.tenants.EXPECT().RequireStorefront(gomock.Any(), "t-down").
					Return(models.Tenant{}, apperrors.ErrTenantUnavailable)
			},
			wantErr: apperrors.ErrTenantUnavailable,
		},
		{
			name:     "unknown variant",
			identity: customer,
			input:    service.AddItemInput{TenantID: "t1", MenuItemID: "item-1", VariantName: "jumbo", Quantity: 1},
			mockSetup: func() {
				cm.tenants.EXPECT().RequireStorefront(gomock.Any(), "t1").
					Return(models.Tenant{ID: "t1", Status: models.TenantActive}, nil)
				cm.menu.EXPECT().GetItem(gomock.Any(), "t1", "item-1").Return(testMenuItem, nil)
			},
			wantErr: apperrors.ErrInvalidVariant,
		},
		{
			name:     "unavailable variant",
			identity: customer,
			input:    service.AddItemInput{TenantID: "t1", MenuItemID: "item-1", VariantName: "family", Quantity: 1},
			mockSetup: func() {
				cm.tenants.EXPECT().RequireStorefront(gomock.Any(), "t1").
					Return(models.Tenant{ID: "t1", Status: models.TenantActive}, nil)
				cm.menu.EXPECT().GetItem(gomock.Any(), "t1", "item-1").Return(testMenuItem, nil)
			},
			wantErr: apperrors.ErrInvalidVariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			_, err := svc.Add(context.Background(), tt.identity, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Setting quantity to zero is a removal, never a zero-quantity line.
func TestCartSetQuantityZeroRemoves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cm := newCartService(ctrl)
	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}

	cm.repo.EXPECT().DeleteLine(gomock.Any(), "cust-1", "line-1").Return(nil)

	err := svc.SetQuantity(context.Background(), customer, "line-1", 0)
	assert.NoError(t, err)
}

func TestCartSetQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cm := newCartService(ctrl)
	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}

	cm.repo.EXPECT().UpdateQuantity(gomock.Any(), "cust-1", "line-1", 4).Return(nil)
	assert.NoError(t, svc.SetQuantity(context.Background(), customer, "line-1", 4))

	cm.repo.EXPECT().UpdateQuantity(gomock.Any(), "cust-1", "line-x", 2).
		Return(repository.ErrCartLineNotFound)
	err := svc.SetQuantity(context.Background(), customer, "line-x", 2)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cm := newCartService(ctrl)
	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}

	lines := []models.CartLine{
		{
			ID:       "line-1",
			Quantity: 2,
			Snapshot: models.MenuItemSnapshot{
				BasePrice:       decimal.RequireFromString("200"),
				DiscountPercent: decimal.RequireFromString("10"),
			},
		},
	}
	cm.repo.EXPECT().ListLines(gomock.Any(), "cust-1").Return(lines, nil)

	view, err := svc.Get(context.Background(), customer)

	assert.NoError(t, err)
	assert.Len(t, view.Lines, 1)
	assert.Equal(t, "360.00", view.Total.StringFixed(2))
}
