package model

// Price holds the unit cost of a cart item.
type Price struct {
	Cost float64 `json:"cost" db:"cost"`
}

// CartItem represents a product line in a buyer's cart.
// Price is a pointer so that a missing price can be told apart from a free item.
type CartItem struct {
	ProductID string `json:"productId" db:"product_id"`
	Name      string `json:"name,omitempty" db:"name"`
	Quantity  int    `json:"quantity" db:"quantity"`
	Price     *Price `json:"price,omitempty"`
}

// UnitCost returns the item's cost, or zero when the price is missing.
func (i CartItem) UnitCost() float64 {
	if i.Price == nil {
		return 0
	}
	return i.Price.Cost
}
