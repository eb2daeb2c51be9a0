package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		identity models.Identity
		action   Action
		wantErr  error
	}{
		{
			name:     "anonymous is unauthenticated",
			identity: models.Identity{},
			action:   ActionCartMutate,
			wantErr:  apperrors.ErrUnauthenticated,
		},
		{
			name:     "customer may mutate cart",
			identity: models.Identity{ID: "u1", Role: models.RoleCustomer},
			action:   ActionCartMutate,
		},
		{
			name:     "customer may checkout",
			identity: models.Identity{ID: "u1", Role: models.RoleCustomer},
			action:   ActionPaymentCheckout,
		},
		{
			name:     "customer cannot approve tenants",
			identity: models.Identity{ID: "u1", Role: models.RoleCustomer},
			action:   ActionTenantApprove,
			wantErr:  apperrors.ErrForbidden,
		},
		{
			name:     "owner may manage menu",
			identity: models.Identity{ID: "u2", Role: models.RoleTenantOwner},
			action:   ActionMenuManage,
		},
		{
			name:     "owner cannot suspend tenants",
			identity: models.Identity{ID: "u2", Role: models.RoleTenantOwner},
			action:   ActionTenantSuspend,
			wantErr:  apperrors.ErrForbidden,
		},
		{
			name:     "owner cannot place orders",
			identity: models.Identity{ID: "u2", Role: models.RoleTenantOwner},
			action:   ActionOrderCreate,
			wantErr:  apperrors.ErrForbidden,
		},
		{
			name:     "admin may approve tenants",
			identity: models.Identity{ID: "u3", Role: models.RolePlatformAdmin},
			action:   ActionTenantApprove,
		},
		{
			name:     "admin may read platform analytics",
			identity: models.Identity{ID: "u3", Role: models.RolePlatformAdmin},
			action:   ActionPlatformAnalytics,
		},
		{
			name:     "admin cannot mutate carts",
			identity: models.Identity{ID: "u3", Role: models.RolePlatformAdmin},
			action:   ActionCartMutate,
			wantErr:  apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, tt.action)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorizeTenant(t *testing.T) {
	tenant := models.Tenant{ID: "t1", OwnerID: "owner-1"}

	owner := models.Identity{ID: "owner-1", Role: models.RoleTenantOwner}
	assert.NoError(t, AuthorizeTenant(owner, ActionMenuManage, tenant))

	stranger := models.Identity{ID: "owner-2", Role: models.RoleTenantOwner}
	assert.ErrorIs(t, AuthorizeTenant(stranger, ActionMenuManage, tenant), apperrors.ErrForbidden)

	admin := models.Identity{ID: "admin-1", Role: models.RolePlatformAdmin}
	assert.NoError(t, AuthorizeTenant(admin, ActionMenuManage, tenant))
}
