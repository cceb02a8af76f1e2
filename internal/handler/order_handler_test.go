package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkout-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	orderID := uuid.New()
	testResponse := &model.OrderResponse{
		Order: model.Order{
			ID:               orderID,
			BuyerID:          "B001",
			Kind:             model.OrderKindNew,
			PaymentID:        "COD-1792324800000",
			PaymentStatus:    model.PaymentCashOnDelivery,
			ProductsQuantity: 2,
			TotalPrice:       20,
			CreatedAt:        time.Now(),
		},
		Items: []model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: "P001", Quantity: 2, Cost: 10},
		},
	}

	tests := []struct {
		name           string
		idParam        string
		mockReturn     *model.OrderResponse
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:           "Success",
			idParam:        orderID.String(),
			mockReturn:     testResponse,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Order not found",
			idParam:        uuid.New().String(),
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeOrderNotFound,
			expectService:  true,
		},
		{
			name:           "Service error",
			idParam:        uuid.New().String(),
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
			expectService:  true,
		},
		{
			name:           "Invalid UUID format",
			idParam:        "invalid-uuid",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidID,
		},
		{
			name:           "Missing order ID",
			idParam:        "",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/orders/"+tt.idParam, nil)
			req = withURLParams(req, map[string]string{"id": tt.idParam})
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			} else {
				var resp model.OrderResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, orderID, resp.Order.ID)
				assert.Len(t, resp.Items, 1)
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			}
		})
	}
}
