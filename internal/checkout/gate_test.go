package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"checkout-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStoreReader is a mock implementation of StoreReader.
type MockStoreReader struct {
	mock.Mock
}

func (m *MockStoreReader) CurrentBuyer(ctx context.Context, buyerID string) (*model.Buyer, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Buyer), args.Error(1)
}

func (m *MockStoreReader) CartProduct(ctx context.Context, buyerID, productID string) (*model.CartItem, error) {
	args := m.Called(ctx, buyerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockStoreReader) OrderStatus(buyerID string) model.OrderStatus {
	args := m.Called(buyerID)
	return args.Get(0).(model.OrderStatus)
}

// MockStoreCommands is a mock implementation of StoreCommands.
type MockStoreCommands struct {
	mock.Mock
}

func (m *MockStoreCommands) Dispatch(ctx context.Context, kind string, req *model.OrderRequest) error {
	args := m.Called(ctx, kind, req)
	return args.Error(0)
}

func (m *MockStoreCommands) RemoveProduct(ctx context.Context, buyerID, productID string) error {
	args := m.Called(ctx, buyerID, productID)
	return args.Error(0)
}

func (m *MockStoreCommands) RemoveAll(ctx context.Context, buyerID string) error {
	args := m.Called(ctx, buyerID)
	return args.Error(0)
}

var gateNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func testBuyer() *model.Buyer {
	return &model.Buyer{
		ID:   "B001",
		Name: "Jane Doe",
		ShippingData: model.ShippingData{
			Address: "1 Main St", City: "Springfield", State: "IL", Country: "US", PinCode: "62701", PhoneNo: "5550100",
		},
		Cart: []model.CartItem{
			{ProductID: "P001", Quantity: 2, Price: &model.Price{Cost: 10}},
			{ProductID: "P002", Quantity: 1, Price: &model.Price{Cost: 5}},
		},
	}
}

func newTestGate(reader *MockStoreReader, commands *MockStoreCommands) *Gate {
	return NewGate(reader, commands, zerolog.Nop(), WithClock(fixedClock(gateNow)))
}

func TestGate_Submit_FullCart(t *testing.T) {
	ctx := context.Background()
	reader := new(MockStoreReader)
	commands := new(MockStoreCommands)
	gate := newTestGate(reader, commands)

	form := validCardForm(t, gateNow)

	var dispatched *model.OrderRequest
	reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
	commands.On("Dispatch", ctx, model.OrderKindNew, mock.AnythingOfType("*model.OrderRequest")).
		Run(func(args mock.Arguments) { dispatched = args.Get(2).(*model.OrderRequest) }).
		Return(nil)
	commands.On("RemoveAll", ctx, "B001").Return(nil)

	sub, err := gate.Submit(ctx, form, "B001", "")

	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, model.OrderModeCart, sub.Mode)
	assert.Same(t, dispatched, sub.Request)
	assert.Equal(t, "B001", sub.Request.Buyer)
	assert.Equal(t, 3, sub.Request.ProductsQuantity)
	assert.Equal(t, 25.0, sub.Request.TotalPrice)
	assert.Len(t, sub.Request.OrderedProducts, 2)
	assert.Equal(t, "Springfield", sub.Request.ShippingData.City)
	assert.Equal(t, model.PaymentSuccessful, sub.Request.PaymentInfo.Status)
	assert.True(t, strings.HasPrefix(sub.Request.PaymentInfo.ID, "4242-0130-"))
	assert.Equal(t, StateSubmitted, form.State())

	reader.AssertExpectations(t)
	commands.AssertExpectations(t)
	commands.AssertNotCalled(t, "RemoveProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestGate_Submit_SingleProduct(t *testing.T) {
	ctx := context.Background()
	reader := new(MockStoreReader)
	commands := new(MockStoreCommands)
	gate := newTestGate(reader, commands)

	form := NewForm(fixedClock(gateNow))
	form.SetCashOnDelivery(true)

	item := &model.CartItem{ProductID: "P003", Quantity: 3, Price: &model.Price{Cost: 7}}
	reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
	reader.On("CartProduct", ctx, "B001", "P003").Return(item, nil)
	commands.On("Dispatch", ctx, model.OrderKindNew, mock.AnythingOfType("*model.OrderRequest")).Return(nil)
	commands.On("RemoveProduct", ctx, "B001", "P003").Return(nil)

	sub, err := gate.Submit(ctx, form, "B001", "P003")

	require.NoError(t, err)
	assert.Equal(t, model.OrderModeSingle, sub.Mode)
	assert.Equal(t, 3, sub.Request.ProductsQuantity)
	assert.Equal(t, 21.0, sub.Request.TotalPrice)
	assert.Equal(t, []model.CartItem{*item}, sub.Request.OrderedProducts)
	assert.Equal(t, model.PaymentCashOnDelivery, sub.Request.PaymentInfo.Status)
	assert.Equal(t, "COD-1792324800000", sub.Request.PaymentInfo.ID)

	reader.AssertExpectations(t)
	commands.AssertExpectations(t)
	commands.AssertNotCalled(t, "RemoveAll", mock.Anything, mock.Anything)
}

func TestGate_Submit_ExpiredCardBlocked(t *testing.T) {
	ctx := context.Background()
	reader := new(MockStoreReader)
	commands := new(MockStoreCommands)
	gate := newTestGate(reader, commands)

	form, err := NewFormFromRequest(&model.CheckoutRequest{
		Payment: model.PaymentInput{
			CardName: "Jane Doe", CardNumber: "4111111111114242", ExpDate: "2020-01-31", CVV: "123",
		},
	}, fixedClock(gateNow))
	require.NoError(t, err)
	require.True(t, form.Expired())

	sub, err := gate.Submit(ctx, form, "B001", "")

	require.Error(t, err)
	assert.Nil(t, sub)
	assert.Equal(t, model.ErrCardExpired, err)
	assert.Equal(t, "Your card is expired. Please choose a valid payment method or use Cash on Delivery.", err.Error())
	assert.Equal(t, StateIdle, form.State())

	reader.AssertNotCalled(t, "CurrentBuyer", mock.Anything, mock.Anything)
	commands.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestGate_Submit_ExpiredCardWithCashOnDelivery(t *testing.T) {
	ctx := context.Background()
	reader := new(MockStoreReader)
	commands := new(MockStoreCommands)
	gate := newTestGate(reader, commands)

	form, err := NewFormFromRequest(&model.CheckoutRequest{
		Payment:        model.PaymentInput{ExpDate: "2020-01-31"},
		CashOnDelivery: true,
	}, fixedClock(gateNow))
	require.NoError(t, err)

	reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
	commands.On("Dispatch", ctx, model.OrderKindNew, mock.AnythingOfType("*model.OrderRequest")).Return(nil)
	commands.On("RemoveAll", ctx, "B001").Return(nil)

	sub, err := gate.Submit(ctx, form, "B001", "")

	require.NoError(t, err)
	assert.Equal(t, model.PaymentCashOnDelivery, sub.Request.PaymentInfo.Status)
	assert.True(t, strings.HasPrefix(sub.Request.PaymentInfo.ID, "COD-"))
}

func TestGate_Submit_RetryAfterBlock(t *testing.T) {
	ctx := context.Background()
	reader := new(MockStoreReader)
	commands := new(MockStoreCommands)
	gate := newTestGate(reader, commands)

	form, err := NewFormFromRequest(&model.CheckoutRequest{
		Payment: model.PaymentInput{
			CardName: "Jane Doe", CardNumber: "4111111111114242", ExpDate: "2020-01-31", CVV: "123",
		},
	}, fixedClock(gateNow))
	require.NoError(t, err)

	_, err = gate.Submit(ctx, form, "B001", "")
	require.ErrorIs(t, err, model.ErrCardExpired)

	_, err = form.SetField(FieldExpDate, "2031-05-31")
	require.NoError(t, err)

	reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
	commands.On("Dispatch", ctx, model.OrderKindNew, mock.AnythingOfType("*model.OrderRequest")).Return(nil)
	commands.On("RemoveAll", ctx, "B001").Return(nil)

	sub, err := gate.Submit(ctx, form, "B001", "")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sub.Request.PaymentInfo.ID, "4242-0531-"))
}

func TestGate_Submit_DuplicateSubmissionsAreNotLocked(t *testing.T) {
	ctx := context.Background()
	reader := new(MockStoreReader)
	commands := new(MockStoreCommands)
	gate := newTestGate(reader, commands)

	form := validCardForm(t, gateNow)

	reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
	commands.On("Dispatch", ctx, model.OrderKindNew, mock.AnythingOfType("*model.OrderRequest")).Return(nil)
	commands.On("RemoveAll", ctx, "B001").Return(nil)

	_, err := gate.Submit(ctx, form, "B001", "")
	require.NoError(t, err)
	_, err = gate.Submit(ctx, form, "B001", "")
	require.NoError(t, err)

	commands.AssertNumberOfCalls(t, "Dispatch", 2)
}

func TestGate_Submit_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		productID   string
		setup       func(reader *MockStoreReader, commands *MockStoreCommands)
		expectedErr error
	}{
		{
			name: "Buyer not found",
			setup: func(reader *MockStoreReader, commands *MockStoreCommands) {
				reader.On("CurrentBuyer", ctx, "B001").Return(nil, nil)
			},
			expectedErr: model.ErrBuyerNotFound,
		},
		{
			name: "Buyer lookup fails",
			setup: func(reader *MockStoreReader, commands *MockStoreCommands) {
				reader.On("CurrentBuyer", ctx, "B001").Return(nil, errors.New("connection refused"))
			},
		},
		{
			name:      "Targeted product not in cart",
			productID: "P404",
			setup: func(reader *MockStoreReader, commands *MockStoreCommands) {
				reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
				reader.On("CartProduct", ctx, "B001", "P404").Return(nil, nil)
			},
			expectedErr: model.ErrProductNotFound,
		},
		{
			name: "Dispatch rejected",
			setup: func(reader *MockStoreReader, commands *MockStoreCommands) {
				reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
				commands.On("Dispatch", ctx, model.OrderKindNew, mock.Anything).Return(errors.New("dispatcher closed"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(MockStoreReader)
			commands := new(MockStoreCommands)
			tt.setup(reader, commands)
			gate := newTestGate(reader, commands)
			form := validCardForm(t, gateNow)

			sub, err := gate.Submit(ctx, form, "B001", tt.productID)

			require.Error(t, err)
			assert.Nil(t, sub)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			assert.Equal(t, StateIdle, form.State())
			commands.AssertNotCalled(t, "RemoveAll", mock.Anything, mock.Anything)
			commands.AssertNotCalled(t, "RemoveProduct", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGate_Submit_CartCleanupFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	reader := new(MockStoreReader)
	commands := new(MockStoreCommands)
	gate := newTestGate(reader, commands)

	reader.On("CurrentBuyer", ctx, "B001").Return(testBuyer(), nil)
	commands.On("Dispatch", ctx, model.OrderKindNew, mock.Anything).Return(nil)
	commands.On("RemoveAll", ctx, "B001").Return(errors.New("database error"))

	sub, err := gate.Submit(ctx, validCardForm(t, gateNow), "B001", "")

	require.NoError(t, err)
	assert.NotNil(t, sub)
}
