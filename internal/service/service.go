package service

import (
	"context"

	"checkout-kart/internal/checkout"
	"checkout-kart/internal/model"

	"github.com/google/uuid"
)

// CheckoutStore is the shared checkout store seen by the payment step.
type CheckoutStore interface {
	checkout.StoreReader
	checkout.StoreCommands

	// OrderSnapshot returns the buyer's order status and the generation of
	// the dispatched order it belongs to, 0 if none was dispatched.
	OrderSnapshot(buyerID string) (model.OrderStatus, uint64)
}

// CheckoutService defines the operations of the payment step of checkout.
type CheckoutService interface {
	// Submit validates the payment form and dispatches the order. A blocked
	// submission returns a *model.DomainError carrying the popup message.
	Submit(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// Totals previews the quantity and price of the order a submit would build.
	Totals(ctx context.Context, buyerID, productID string) (*model.TotalsResponse, error)

	// CheckExpiry validates the expiry field as typed.
	CheckExpiry(expDate string) *model.ExpiryResponse

	// Status reports the buyer's order status and the reaction it triggers.
	// Each reaction is reported once per status change.
	Status(buyerID string) *model.StatusResponse
}

// OrderService defines operations for reading created orders.
type OrderService interface {
	// GetByID retrieves an order by its ID with all items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
}
