package repository

import (
	"context"

	"checkout-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CartRepository defines the interface for buyer and cart data access operations.
type CartRepository interface {
	// GetBuyer retrieves a buyer with shipping data and cart items.
	// Returns nil without error if the buyer does not exist.
	GetBuyer(ctx context.Context, buyerID string) (*model.Buyer, error)

	// GetCartItem retrieves a single cart line. Returns nil without error if absent.
	GetCartItem(ctx context.Context, buyerID, productID string) (*model.CartItem, error)

	// SaveBuyer inserts or updates a buyer's name and shipping data.
	SaveBuyer(ctx context.Context, buyer *model.Buyer) error

	// AddCartItem inserts a cart line or replaces the existing one for the same product.
	AddCartItem(ctx context.Context, buyerID string, item model.CartItem) error

	// RemoveCartItem deletes a single product from the buyer's cart.
	RemoveCartItem(ctx context.Context, buyerID, productID string) error

	// ClearCart deletes every product from the buyer's cart.
	ClearCart(ctx context.Context, buyerID string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)
}
