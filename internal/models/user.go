package models

import "time"

type Role string

const (
	RoleCustomer      Role = "customer"
	RoleTenantOwner   Role = "tenant_owner"
	RolePlatformAdmin Role = "platform_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTenantOwner, RolePlatformAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password,omitempty"`
	Role      Role      `json:"role"`
	TenantID  string    `json:"tenant_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the request-scoped authenticated actor. It is resolved once by
// the auth middleware and passed explicitly into every core call.
type Identity struct {
	ID       string
	Role     Role
	TenantID string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RolePlatformAdmin
}
