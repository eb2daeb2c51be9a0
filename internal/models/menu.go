package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItemVariant struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

type MenuItem struct {
	ID              string            `json:"id"`
	TenantID        string            `json:"tenant_id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	Image           string            `json:"image"`
	IsVeg           bool              `json:"is_veg"`
	SpiceLevel      int               `json:"spice_level"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	Variants        []MenuItemVariant `json:"variants"`
	IsAvailable     bool              `json:"is_available"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Variant looks up a variant by name.
func (m MenuItem) Variant(name string) (MenuItemVariant, bool) {
	for _, v := range m.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return MenuItemVariant{}, false
}

// MenuItemSnapshot is the frozen pricing view captured at add-to-cart time.
// Carts and orders never re-read the live menu item after this point, so
// later catalog edits cannot drift an already-quoted price.
type MenuItemSnapshot struct {
	MenuItemID      string          `json:"menu_item_id"`
	Name            string          `json:"name"`
	VariantName     string          `json:"variant_name,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Image           string          `json:"image,omitempty"`
	IsVeg           bool            `json:"is_veg"`
	SpiceLevel      int             `json:"spice_level"`
}

// Snapshot freezes the given variant of this item.
func (m MenuItem) Snapshot(variant MenuItemVariant) MenuItemSnapshot {
	return MenuItemSnapshot{
		MenuItemID:      m.ID,
		Name:            m.Name,
		VariantName:     variant.Name,
		BasePrice:       variant.Price,
		DiscountPercent: m.DiscountPercent,
		Image:           m.Image,
		IsVeg:           m.IsVeg,
		SpiceLevel:      m.SpiceLevel,
	}
}
