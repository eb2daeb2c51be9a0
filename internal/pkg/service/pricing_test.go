package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/models"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		discount string
		expected string
	}{
		{
			name:     "no discount",
			base:     "149.99",
			discount: "0",
			expected: "149.99",
		},
		{
			name:     "ten percent off",
			base:     "200",
			discount: "10",
			expected: "180.00",
		},
		{
			name:     "rounds to two decimals",
			base:     "99.99",
			discount: "15",
			expected: "84.99",
		},
		{
			name:     "half rounds up",
			base:     "4.69",
			discount: "50",
			expected: "2.35",
		},
		{
			name:     "full discount",
			base:     "250",
			discount: "100",
			expected: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePrice(
				decimal.RequireFromString(tt.base),
				decimal.RequireFromString(tt.discount),
			)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestLineTotal(t *testing.T) {
	snapshot := models.MenuItemSnapshot{
		BasePrice:       decimal.RequireFromString("200"),
		DiscountPercent: decimal.RequireFromString("10"),
	}

	got := LineTotal(snapshot, 2)
	assert.Equal(t, "360.00", got.StringFixed(2))
}

// The effective unit price is rounded before multiplication, so summing the
// same lines in any order always lands on the same total.
func TestCartTotalOrderIndependent(t *testing.T) {
	lines := []models.CartLine{
		{
			Quantity: 3,
			Snapshot: models.MenuItemSnapshot{
				BasePrice:       decimal.RequireFromString("99.99"),
				DiscountPercent: decimal.RequireFromString("15"),
			},
		},
		{
			Quantity: 2,
			Snapshot: models.MenuItemSnapshot{
				BasePrice:       decimal.RequireFromString("200"),
				DiscountPercent: decimal.RequireFromString("10"),
			},
		},
		{
			Quantity: 1,
			Snapshot: models.MenuItemSnapshot{
				BasePrice:       decimal.RequireFromString("149.50"),
				DiscountPercent: decimal.Zero,
			},
		},
	}

	forward := CartTotal(lines)

	reversed := []models.CartLine{lines[2], lines[1], lines[0]}
	backward := CartTotal(reversed)

	assert.True(t, forward.Equal(backward))
	assert.Equal(t, "764.47", forward.StringFixed(2))
}

func TestCartTotalEmpty(t *testing.T) {
	assert.True(t, CartTotal(nil).IsZero())
}
