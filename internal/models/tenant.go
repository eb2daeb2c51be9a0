package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TenantStatus string

const (
	TenantPending   TenantStatus = "pending"
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

type Tenant struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"owner_id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	CuisineTypes   []string        `json:"cuisine_types"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Logo           string          `json:"logo,omitempty"`
	CoverImage     string          `json:"cover_image,omitempty"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Status         TenantStatus    `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StorefrontVisible reports whether customer-facing operations (menu browse,
// cart add, checkout, payment session creation) may reach this tenant.
func (t Tenant) StorefrontVisible() bool {
	return t.Status == TenantActive
}

// CanApprove covers both first approval and re-approval after suspension.
func (t Tenant) CanApprove() bool {
	return t.Status == TenantPending || t.Status == TenantSuspended
}

func (t Tenant) CanSuspend() bool {
	return t.Status == TenantActive
}

// TenantUpdate carries the descriptive fields an owner may edit. Status is
// deliberately absent: lifecycle transitions are admin-only.
type TenantUpdate struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	CuisineTypes []string `json:"cuisine_types"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Logo         string   `json:"logo,omitempty"`
	CoverImage   string   `json:"cover_image,omitempty"`
}
