package models

import "time"

type CartLine struct {
	ID          string           `json:"id"`
	CustomerID  string           `json:"customer_id"`
	TenantID    string           `json:"tenant_id"`
	MenuItemID  string           `json:"menu_item_id"`
	VariantName string           `json:"variant_name,omitempty"`
	Quantity    int              `json:"quantity"`
	Snapshot    MenuItemSnapshot `json:"snapshot"`
	AddedAt     time.Time        `json:"added_at"`
}
