package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderKindNew is the only order kind the dispatcher accepts.
const OrderKindNew = "newOrder"

// OrderStatus is the submission status published by the order dispatcher.
type OrderStatus string

const (
	OrderStatusIdle   OrderStatus = "idle"
	OrderStatusAdded  OrderStatus = "added"
	OrderStatusFailed OrderStatus = "failed"
	OrderStatusError  OrderStatus = "error"
)

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// OrderMode tells whether an order covers a single targeted product or the whole cart.
type OrderMode string

const (
	OrderModeSingle OrderMode = "single"
	OrderModeCart   OrderMode = "cart"
)

// OrderRequest is the payload handed to the order dispatcher for one submission.
type OrderRequest struct {
	Buyer            string       `json:"buyer"`
	ShippingData     ShippingData `json:"shippingData"`
	OrderedProducts  []CartItem   `json:"orderedProducts"`
	PaymentInfo      PaymentInfo  `json:"paymentInfo"`
	ProductsQuantity int          `json:"productsQuantity"`
	TotalPrice       float64      `json:"totalPrice"`
}

// Order represents a persisted customer order.
type Order struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	BuyerID          string        `json:"buyer" db:"buyer_id"`
	Kind             string        `json:"kind" db:"kind"`
	ShippingData     ShippingData  `json:"shippingData" db:"shipping_data"`
	PaymentID        string        `json:"paymentId" db:"payment_id"`
	PaymentStatus    PaymentStatus `json:"paymentStatus" db:"payment_status"`
	ProductsQuantity int           `json:"productsQuantity" db:"products_quantity"`
	TotalPrice       float64       `json:"totalPrice" db:"total_price"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name,omitempty" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Cost      float64   `json:"cost" db:"cost"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
