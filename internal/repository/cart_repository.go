package repository

import (
	"context"
	"errors"
	"fmt"

	"checkout-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetBuyer retrieves a buyer with shipping data and cart items.
func (r *cartRepository) GetBuyer(ctx context.Context, buyerID string) (*model.Buyer, error) {
	query := `
		SELECT id, name, shipping_data
		FROM buyers
		WHERE id = $1
	`

	var buyer model.Buyer
	err := r.pool.QueryRow(ctx, query, buyerID).Scan(&buyer.ID, &buyer.Name, &buyer.ShippingData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("buyer_id", buyerID).Msg("buyer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("buyer_id", buyerID).Msg("failed to query buyer")
		return nil, fmt.Errorf("failed to query buyer: %w", err)
	}

	itemsQuery := `
		SELECT product_id, name, quantity, cost
		FROM cart_items
		WHERE buyer_id = $1
		ORDER BY added_at, product_id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, buyerID)
	if err != nil {
		r.logger.Error().Err(err).Str("buyer_id", buyerID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	buyer.Cart = []model.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		buyer.Cart = append(buyer.Cart, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return &buyer, nil
}

// GetCartItem retrieves a single cart line.
func (r *cartRepository) GetCartItem(ctx context.Context, buyerID, productID string) (*model.CartItem, error) {
	query := `
		SELECT product_id, name, quantity, cost
		FROM cart_items
		WHERE buyer_id = $1 AND product_id = $2
	`

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, buyerID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().
				Str("buyer_id", buyerID).
				Str("product_id", productID).
				Msg("cart item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("buyer_id", buyerID).
			Str("product_id", productID).
			Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// SaveBuyer inserts or updates a buyer's name and shipping data.
func (r *cartRepository) SaveBuyer(ctx context.Context, buyer *model.Buyer) error {
	query := `
		INSERT INTO buyers (id, name, shipping_data)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, shipping_data = EXCLUDED.shipping_data
	`

	if _, err := r.pool.Exec(ctx, query, buyer.ID, buyer.Name, buyer.ShippingData); err != nil {
		r.logger.Error().Err(err).Str("buyer_id", buyer.ID).Msg("failed to save buyer")
		return fmt.Errorf("failed to save buyer: %w", err)
	}

	return nil
}

// AddCartItem inserts a cart line or replaces the existing one for the same product.
func (r *cartRepository) AddCartItem(ctx context.Context, buyerID string, item model.CartItem) error {
	query := `
		INSERT INTO cart_items (buyer_id, product_id, name, quantity, cost)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (buyer_id, product_id) DO UPDATE
		SET name = EXCLUDED.name, quantity = EXCLUDED.quantity, cost = EXCLUDED.cost
	`

	var cost *float64
	if item.Price != nil {
		cost = &item.Price.Cost
	}

	if _, err := r.pool.Exec(ctx, query, buyerID, item.ProductID, item.Name, item.Quantity, cost); err != nil {
		r.logger.Error().Err(err).
			Str("buyer_id", buyerID).
			Str("product_id", item.ProductID).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// RemoveCartItem deletes a single product from the buyer's cart.
func (r *cartRepository) RemoveCartItem(ctx context.Context, buyerID, productID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE buyer_id = $1 AND product_id = $2`, buyerID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("buyer_id", buyerID).
			Str("product_id", productID).
			Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	r.logger.Debug().
		Str("buyer_id", buyerID).
		Str("product_id", productID).
		Int64("removed", tag.RowsAffected()).
		Msg("cart item removed")

	return nil
}

// ClearCart deletes every product from the buyer's cart.
func (r *cartRepository) ClearCart(ctx context.Context, buyerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE buyer_id = $1`, buyerID)
	if err != nil {
		r.logger.Error().Err(err).Str("buyer_id", buyerID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().
		Str("buyer_id", buyerID).
		Int64("removed", tag.RowsAffected()).
		Msg("cart cleared")

	return nil
}

// scanCartItem scans one cart row; a NULL cost leaves the price missing.
func scanCartItem(row pgx.Row) (model.CartItem, error) {
	var item model.CartItem
	var cost *float64

	if err := row.Scan(&item.ProductID, &item.Name, &item.Quantity, &cost); err != nil {
		return model.CartItem{}, err
	}
	if cost != nil {
		item.Price = &model.Price{Cost: *cost}
	}

	return item, nil
}
