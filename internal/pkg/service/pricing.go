package service

import (
	"github.com/shopspring/decimal"
	"github.com/tastebite/tastebite-service/internal/models"
)

// Pricing is pure and deterministic. The effective unit price is rounded
// half-up to 2 fractional digits once, before any multiplication, so a
// running total and a recomputed total over the same snapshot always agree
// regardless of accumulation order.

var hundred = decimal.NewFromInt(100)

// EffectivePrice applies the optional percentage discount to the base price.
func EffectivePrice(base, discountPercent decimal.Decimal) decimal.Decimal {
	if discountPercent.IsZero() {
		return base.Round(2)
	}
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return base.Mul(factor).Round(2)
}

func LineTotal(snapshot models.MenuItemSnapshot, quantity int) decimal.Decimal {
	unit := EffectivePrice(snapshot.BasePrice, snapshot.DiscountPercent)
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

func CartTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line.Snapshot, line.Quantity))
	}
	return total
}
