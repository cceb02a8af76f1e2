// Package checkout holds the payment step of checkout: form state, derived
// totals and payment records, the submission gate and the reactions to the
// order status published by the dispatcher.
//
// Everything outside this package is reached through the ports below.
package checkout

import (
	"context"

	"checkout-kart/internal/model"
)

// StoreReader is the read side of the shared checkout store.
type StoreReader interface {
	// CurrentBuyer returns the buyer with shipping data and cart contents.
	// A nil buyer with a nil error means the buyer does not exist.
	CurrentBuyer(ctx context.Context, buyerID string) (*model.Buyer, error)

	// CartProduct returns the buyer's cart line for productID, or nil if absent.
	CartProduct(ctx context.Context, buyerID, productID string) (*model.CartItem, error)

	// OrderStatus returns the last status published for the buyer's order.
	OrderStatus(buyerID string) model.OrderStatus
}

// StoreCommands is the write side of the shared checkout store.
type StoreCommands interface {
	// Dispatch hands the order over for asynchronous creation. The outcome is
	// observed later through StoreReader.OrderStatus.
	Dispatch(ctx context.Context, kind string, req *model.OrderRequest) error

	// RemoveProduct removes a single product from the buyer's cart.
	RemoveProduct(ctx context.Context, buyerID, productID string) error

	// RemoveAll empties the buyer's cart.
	RemoveAll(ctx context.Context, buyerID string) error
}

// Navigator moves the buyer to another view.
type Navigator interface {
	Navigate(route string)
}

// Notifier shows a dismissible popup message.
type Notifier interface {
	Show(message string)
}
