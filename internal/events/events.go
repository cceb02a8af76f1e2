// Package events publishes order lifecycle events to RabbitMQ.
package events

import (
	"context"
	"time"

	"checkout-kart/internal/model"

	"github.com/google/uuid"
)

// TypeOrderCreated is the event type of a persisted order.
const TypeOrderCreated = "order.created"

// OrderCreated is published once an order has been persisted.
type OrderCreated struct {
	Type             string              `json:"type"`
	OrderID          uuid.UUID           `json:"orderId"`
	Buyer            string              `json:"buyer"`
	PaymentID        string              `json:"paymentId"`
	PaymentStatus    model.PaymentStatus `json:"paymentStatus"`
	Items            []model.OrderItem   `json:"items"`
	ProductsQuantity int                 `json:"productsQuantity"`
	TotalPrice       float64             `json:"totalPrice"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// NewOrderCreated builds the event for a persisted order.
func NewOrderCreated(order *model.Order, items []model.OrderItem) *OrderCreated {
	return &OrderCreated{
		Type:             TypeOrderCreated,
		OrderID:          order.ID,
		Buyer:            order.BuyerID,
		PaymentID:        order.PaymentID,
		PaymentStatus:    order.PaymentStatus,
		Items:            items,
		ProductsQuantity: order.ProductsQuantity,
		TotalPrice:       order.TotalPrice,
		CreatedAt:        order.CreatedAt,
	}
}

// Publisher defines the interface for publishing order events.
type Publisher interface {
	// PublishOrderCreated publishes an order-created event.
	PublishOrderCreated(ctx context.Context, event *OrderCreated) error

	// Close releases the broker connection.
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOrderCreated(context.Context, *OrderCreated) error { return nil }

func (noopPublisher) Close() error { return nil }
