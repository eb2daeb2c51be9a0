package service

import (
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
)

// Action names a mutating or privileged capability. Every service consults
// the gate before such an operation instead of branching on roles inline.
type Action string

const (
	ActionCartMutate        Action = "cart:mutate"
	ActionOrderCreate       Action = "order:create"
	ActionOrderUpdateStatus Action = "order:update_status"
	ActionTenantSubmit      Action = "tenant:submit"
	ActionTenantUpdate      Action = "tenant:update"
	ActionTenantApprove     Action = "tenant:approve"
	ActionTenantSuspend     Action = "tenant:suspend"
	ActionMenuManage        Action = "menu:manage"
	ActionPaymentCheckout   Action = "payment:checkout"
	ActionPlatformAnalytics Action = "analytics:platform"
	ActionTenantAnalytics   Action = "analytics:tenant"
)

// capabilities is the single role-to-action table for the whole platform.
var capabilities = map[models.Role]map[Action]bool{
	models.RoleCustomer: {
		ActionCartMutate:      true,
		ActionOrderCreate:     true,
		ActionPaymentCheckout: true,
	},
	models.RoleTenantOwner: {
		ActionTenantSubmit:      true,
		ActionTenantUpdate:      true,
		ActionMenuManage:        true,
		ActionOrderUpdateStatus: true,
		ActionTenantAnalytics:   true,
	},
	models.RolePlatformAdmin: {
		ActionTenantApprove:     true,
		ActionTenantSuspend:     true,
		ActionTenantUpdate:      true,
		ActionMenuManage:        true,
		ActionOrderUpdateStatus: true,
		ActionPlatformAnalytics: true,
		ActionTenantAnalytics:   true,
	},
}

// Authorize resolves identity plus action to allow or deny. An empty identity
// is always unauthenticated; a known role without the capability is forbidden.
func Authorize(identity models.Identity, action Action) error {
	if identity.ID == "" {
		return apperrors.ErrUnauthenticated
	}
	if capabilities[identity.Role][action] {
		return nil
	}
	return apperrors.ErrForbidden
}

// AuthorizeTenant additionally requires ownership of the tenant record,
// which admins bypass. Used for owner-scoped tenant operations.
func AuthorizeTenant(identity models.Identity, action Action, tenant models.Tenant) error {
	if err := Authorize(identity, action); err != nil {
		return err
	}
	if identity.IsAdmin() || tenant.OwnerID == identity.ID {
		return nil
	}
	return apperrors.ErrForbidden
}
