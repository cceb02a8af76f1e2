package service

import (
	"context"
	"fmt"

	"checkout-kart/internal/model"
	"checkout-kart/internal/repository"
)

// OrderDispatcher hands orders over for asynchronous creation.
type OrderDispatcher interface {
	Dispatch(ctx context.Context, kind string, req *model.OrderRequest) error
}

// StatusReader reads the order status published per buyer together with the
// generation of the order it belongs to.
type StatusReader interface {
	Snapshot(buyerID string) (model.OrderStatus, uint64)
}

// checkoutStore implements CheckoutStore over the cart repository, the order
// dispatcher and the published order statuses.
type checkoutStore struct {
	carts      repository.CartRepository
	dispatcher OrderDispatcher
	statuses   StatusReader
}

// NewCheckoutStore creates the checkout store.
func NewCheckoutStore(carts repository.CartRepository, dispatcher OrderDispatcher, statuses StatusReader) CheckoutStore {
	return &checkoutStore{
		carts:      carts,
		dispatcher: dispatcher,
		statuses:   statuses,
	}
}

func (s *checkoutStore) CurrentBuyer(ctx context.Context, buyerID string) (*model.Buyer, error) {
	buyer, err := s.carts.GetBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer: %w", err)
	}
	return buyer, nil
}

func (s *checkoutStore) CartProduct(ctx context.Context, buyerID, productID string) (*model.CartItem, error) {
	item, err := s.carts.GetCartItem(ctx, buyerID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return item, nil
}

func (s *checkoutStore) OrderStatus(buyerID string) model.OrderStatus {
	status, _ := s.statuses.Snapshot(buyerID)
	return status
}

func (s *checkoutStore) OrderSnapshot(buyerID string) (model.OrderStatus, uint64) {
	return s.statuses.Snapshot(buyerID)
}

func (s *checkoutStore) Dispatch(ctx context.Context, kind string, req *model.OrderRequest) error {
	return s.dispatcher.Dispatch(ctx, kind, req)
}

func (s *checkoutStore) RemoveProduct(ctx context.Context, buyerID, productID string) error {
	return s.carts.RemoveCartItem(ctx, buyerID, productID)
}

func (s *checkoutStore) RemoveAll(ctx context.Context, buyerID string) error {
	return s.carts.ClearCart(ctx, buyerID)
}
