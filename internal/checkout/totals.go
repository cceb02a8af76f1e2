package checkout

import (
	"checkout-kart/internal/model"

	"github.com/shopspring/decimal"
)

// Totals is the aggregate quantity and price of a set of cart items.
type Totals struct {
	Quantity int
	Price    float64
}

// CartTotals sums quantity and quantity×cost over items. Missing prices and
// non-positive quantities or costs count as zero.
func CartTotals(items []model.CartItem) Totals {
	quantity := 0
	price := decimal.Zero

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		quantity += item.Quantity

		cost := item.UnitCost()
		if cost <= 0 {
			continue
		}
		price = price.Add(decimal.NewFromFloat(cost).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return Totals{
		Quantity: quantity,
		Price:    price.InexactFloat64(),
	}
}

// ItemTotals is CartTotals for a single targeted item. A nil item yields zero totals.
func ItemTotals(item *model.CartItem) Totals {
	if item == nil {
		return Totals{}
	}
	return CartTotals([]model.CartItem{*item})
}
