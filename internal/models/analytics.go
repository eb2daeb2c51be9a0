package models

import "github.com/shopspring/decimal"

// PlatformStats is the platform-admin aggregate view.
type PlatformStats struct {
	TotalTenants     int             `json:"total_tenants"`
	ActiveTenants    int             `json:"active_tenants"`
	PendingTenants   int             `json:"pending_tenants"`
	SuspendedTenants int             `json:"suspended_tenants"`
	TotalOrders      int             `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
}

// TenantStats is the per-tenant aggregate view for owners and admins.
type TenantStats struct {
	TotalOrders    int             `json:"total_orders"`
	PaidOrders     int             `json:"paid_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	MenuItemsCount int             `json:"menu_items_count"`
}
