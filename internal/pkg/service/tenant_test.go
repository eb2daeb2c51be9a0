package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/mocks"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type tenantMocks struct {
	repo   *mocks.MockTenantRepository
	orders *mocks.MockOrderRepository
	menu   *mocks.MockMenuRepository
	users  *mocks.MockAuthorizationRepository
}

func newTenantService(ctrl *gomock.Controller) (*service.TenantService, tenantMocks) {
	tm := tenantMocks{
		repo:   mocks.NewMockTenantRepository(ctrl),
		orders: mocks.NewMockOrderRepository(ctrl),
		menu:   mocks.NewMockMenuRepository(ctrl),
		users:  mocks.NewMockAuthorizationRepository(ctrl),
	}
	return service.NewTenantService(tm.repo, tm.orders, tm.menu, tm.users, service.NopNotifier{}), tm
}

var admin = models.Identity{ID: "admin-1", Role: models.RolePlatformAdmin}

func TestTenantSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, tm := newTenantService(ctrl)
	owner := models.Identity{ID: "own-1", Role: models.RoleTenantOwner}

	tm.repo.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tenant models.Tenant) error {
			assert.Equal(t, "own-1", tenant.OwnerID)
			assert.Equal(t, "spice-route-kitchen", tenant.Slug)
			assert.Equal(t, models.TenantPending, tenant.Status)
			assert.Equal(t, "10.00", tenant.CommissionRate.StringFixed(2))
			return nil
		})
	tm.users.EXPECT().SetUserTenant(gomock.Any(), "own-1", gomock.Any()).Return(nil)

	tenant, err := svc.Submit(context.Background(), owner, service.TenantSubmission{
		TenantUpdate: models.TenantUpdate{Name: "Spice  Route_Kitchen"},
	})

	assert.NoError(t, err)
	assert.Equal(t, models.TenantPending, tenant.Status)
}

func TestTenantSubmitRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, tm := newTenantService(ctrl)
	owner := models.Identity{ID: "own-1", Role: models.RoleTenantOwner}

	_, err := svc.Submit(context.Background(), models.Identity{ID: "cust-1", Role: models.RoleCustomer},
		service.TenantSubmission{TenantUpdate: models.TenantUpdate{Name: "Nope"}})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Submit(context.Background(), owner, service.TenantSubmission{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	tm.repo.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(repository.ErrSlugExists)
	_, err = svc.Submit(context.Background(), owner, service.TenantSubmission{
		TenantUpdate: models.TenantUpdate{Name: "Taken Name"},
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateSlug)
}

func TestTenantLifecycle(t *testing.T) {
	tests := []struct {
		name      string
		current   models.TenantStatus
		approve   bool
		expectCAS bool
		casOK     bool
		wantErr   error
	}{
		{
			name:      "approve pending tenant",
			current:   models.TenantPending,
			approve:   true,
			expectCAS: true,
			casOK:     true,
		},
		{
			name:      "reapprove suspended tenant",
			current:   models.TenantSuspended,
			approve:   true,
			expectCAS: true,
			casOK:     true,
		},
		{
			name:    "approve active tenant",
			current: models.TenantActive,
			approve: true,
			wantErr: apperrors.ErrInvalidTransition,
		},
		{
			name:      "suspend active tenant",
			current:   models.TenantActive,
			expectCAS: true,
			casOK:     true,
		},
		{
			name:    "suspend pending tenant",
			current: models.TenantPending,
			wantErr: apperrors.ErrInvalidTransition,
		},
		{
			name:    "suspend suspended tenant",
			current: models.TenantSuspended,
			wantErr: apperrors.ErrInvalidTransition,
		},
		{
			name:      "lost concurrent race",
			current:   models.TenantPending,
			approve:   true,
			expectCAS: true,
			casOK:     false,
			wantErr:   apperrors.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, tm := newTenantService(ctrl)

			tm.repo.EXPECT().GetTenant(gomock.Any(), "t1").
				Return(models.Tenant{ID: "t1", Status: tt.current}, nil)
			if tt.expectCAS {
				tm.repo.EXPECT().UpdateTenantStatus(gomock.Any(), "t1", tt.current, gomock.Any()).
					Return(tt.casOK, nil)
			}

			var err error
			if tt.approve {
				err = svc.Approve(context.Background(), admin, "t1")
			} else {
				err = svc.Suspend(context.Background(), admin, "t1")
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTenantLifecycleAdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTenantService(ctrl)
	owner := models.Identity{ID: "own-1", Role: models.RoleTenantOwner}

	assert.ErrorIs(t, svc.Approve(context.Background(), owner, "t1"), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Suspend(context.Background(), owner, "t1"), apperrors.ErrForbidden)
}

func TestRequireStorefront(t *testing.T) {
	tests := []struct {
		name    string
		status  models.TenantStatus
		wantErr error
	}{
		{name: "active tenant is visible", status: models.TenantActive},
		{name: "pending tenant is hidden", status: models.TenantPending, wantErr: apperrors.ErrTenantUnavailable},
		{name: "suspended tenant is hidden", status: models.TenantSuspended, wantErr: apperrors.ErrTenantUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, tm := newTenantService(ctrl)
			tm.repo.EXPECT().GetTenant(gomock.Any(), "t1").
				Return(models.Tenant{ID: "t1", Status: tt.status}, nil)

			_, err := svc.RequireStorefront(context.Background(), "t1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// A suspended owner keeps read access but loses profile writes; an admin may
// still edit on their behalf.
func TestUpdateProfileWhileSuspended(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, tm := newTenantService(ctrl)
	suspended := models.Tenant{ID: "t1", OwnerID: "own-1", Status: models.TenantSuspended}
	owner := models.Identity{ID: "own-1", Role: models.RoleTenantOwner}

	tm.repo.EXPECT().GetTenant(gomock.Any(), "t1").Return(suspended, nil)
	err := svc.UpdateProfile(context.Background(), owner, "t1", models.TenantUpdate{Name: "New Name"})
	assert.ErrorIs(t, err, apperrors.ErrTenantUnavailable)

	tm.repo.EXPECT().GetTenant(gomock.Any(), "t1").Return(suspended, nil)
	tm.repo.EXPECT().UpdateTenantProfile(gomock.Any(), "t1", gomock.Any()).Return(nil)
	assert.NoError(t, svc.UpdateProfile(context.Background(), admin, "t1", models.TenantUpdate{Name: "New Name"}))
}

func TestListForcesActiveForNonAdmins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, tm := newTenantService(ctrl)

	tm.repo.EXPECT().ListTenants(gomock.Any(), models.TenantActive).Return([]models.Tenant{}, nil)
	_, err := svc.List(context.Background(), models.Identity{ID: "cust-1", Role: models.RoleCustomer}, models.TenantPending)
	assert.NoError(t, err)

	tm.repo.EXPECT().ListTenants(gomock.Any(), models.TenantPending).Return([]models.Tenant{}, nil)
	_, err = svc.List(context.Background(), admin, models.TenantPending)
	assert.NoError(t, err)
}
