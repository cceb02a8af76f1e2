package service

import (
	"context"

	"checkout-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockCheckoutStore is a mock implementation of CheckoutStore.
type MockCheckoutStore struct {
	mock.Mock
}

func (m *MockCheckoutStore) CurrentBuyer(ctx context.Context, buyerID string) (*model.Buyer, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Buyer), args.Error(1)
}

func (m *MockCheckoutStore) CartProduct(ctx context.Context, buyerID, productID string) (*model.CartItem, error) {
	args := m.Called(ctx, buyerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCheckoutStore) OrderStatus(buyerID string) model.OrderStatus {
	return m.Called(buyerID).Get(0).(model.OrderStatus)
}

func (m *MockCheckoutStore) OrderSnapshot(buyerID string) (model.OrderStatus, uint64) {
	args := m.Called(buyerID)
	return args.Get(0).(model.OrderStatus), args.Get(1).(uint64)
}

func (m *MockCheckoutStore) Dispatch(ctx context.Context, kind string, req *model.OrderRequest) error {
	return m.Called(ctx, kind, req).Error(0)
}

func (m *MockCheckoutStore) RemoveProduct(ctx context.Context, buyerID, productID string) error {
	return m.Called(ctx, buyerID, productID).Error(0)
}

func (m *MockCheckoutStore) RemoveAll(ctx context.Context, buyerID string) error {
	return m.Called(ctx, buyerID).Error(0)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetBuyer(ctx context.Context, buyerID string) (*model.Buyer, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Buyer), args.Error(1)
}

func (m *MockCartRepository) GetCartItem(ctx context.Context, buyerID, productID string) (*model.CartItem, error) {
	args := m.Called(ctx, buyerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) SaveBuyer(ctx context.Context, buyer *model.Buyer) error {
	return m.Called(ctx, buyer).Error(0)
}

func (m *MockCartRepository) AddCartItem(ctx context.Context, buyerID string, item model.CartItem) error {
	return m.Called(ctx, buyerID, item).Error(0)
}

func (m *MockCartRepository) RemoveCartItem(ctx context.Context, buyerID, productID string) error {
	return m.Called(ctx, buyerID, productID).Error(0)
}

func (m *MockCartRepository) ClearCart(ctx context.Context, buyerID string) error {
	return m.Called(ctx, buyerID).Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return m.Called(ctx, tx, order).Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	return m.Called(ctx, tx, items).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

// MockDispatcher is a mock implementation of OrderDispatcher.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, kind string, req *model.OrderRequest) error {
	return m.Called(ctx, kind, req).Error(0)
}
