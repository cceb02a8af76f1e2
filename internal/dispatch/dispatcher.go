// Package dispatch creates orders asynchronously and publishes their outcome
// as a per-buyer order status.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"checkout-kart/internal/events"
	"checkout-kart/internal/model"
	"checkout-kart/internal/receipt"
	"checkout-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrClosed is returned by Dispatch after Close has been called.
var ErrClosed = errors.New("dispatcher is closed")

// Dispatcher persists dispatched orders in the background.
type Dispatcher struct {
	orders    repository.OrderRepository
	statuses  *StatusStore
	publisher events.Publisher
	receipts  receipt.Store
	logger    zerolog.Logger
	now       func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the clock used for order timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithReceipts archives a receipt for every created order.
func WithReceipts(store receipt.Store) Option {
	return func(d *Dispatcher) {
		d.receipts = store
	}
}

// WithPublisher publishes an event for every created order.
func WithPublisher(p events.Publisher) Option {
	return func(d *Dispatcher) {
		d.publisher = p
	}
}

// NewDispatcher creates a dispatcher writing orders through orders and
// statuses into statuses.
func NewDispatcher(orders repository.OrderRepository, statuses *StatusStore, logger zerolog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		orders:    orders,
		statuses:  statuses,
		publisher: events.NewNoopPublisher(),
		logger:    logger.With().Str("component", "order-dispatcher").Logger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch opens a new status generation for the buyer, starting at idle, and
// creates the order in the background. The outcome is published to the status store as added, failed
// or error. Dispatch itself only fails once the dispatcher is closed.
func (d *Dispatcher) Dispatch(ctx context.Context, kind string, req *model.OrderRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if req == nil {
		return model.ErrEmptyOrder
	}

	generation := d.statuses.Begin(req.Buyer)

	// The order outlives the request that submitted it.
	bg := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		_, _, err := d.Create(bg, kind, req)
		status := Classify(err)
		if !d.statuses.Publish(req.Buyer, generation, status) {
			d.logger.Debug().
				Str("buyer_id", req.Buyer).
				Uint64("generation", generation).
				Str("status", status.String()).
				Msg("order status superseded by a newer order")
			return
		}

		d.logger.Debug().
			Str("buyer_id", req.Buyer).
			Uint64("generation", generation).
			Str("status", status.String()).
			Msg("order status published")
	}()

	return nil
}

// Classify maps an order creation result to the published status. Rejected
// orders are failed; infrastructure errors are reported as error.
func Classify(err error) model.OrderStatus {
	switch {
	case err == nil:
		return model.OrderStatusAdded
	case model.IsDomainError(err):
		return model.OrderStatusFailed
	default:
		return model.OrderStatusError
	}
}

// Create persists the order and its items in a single transaction, then
// publishes the order event and archives the receipt. Publishing and
// archiving failures are logged and do not fail the order.
func (d *Dispatcher) Create(ctx context.Context, kind string, req *model.OrderRequest) (*model.Order, []model.OrderItem, error) {
	if err := validateOrderRequest(kind, req); err != nil {
		d.logger.Warn().Err(err).Str("kind", kind).Msg("order rejected")
		return nil, nil, err
	}

	tx, err := d.orders.BeginTx(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				d.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := d.now()
	order := &model.Order{
		ID:               uuid.New(),
		BuyerID:          req.Buyer,
		Kind:             kind,
		ShippingData:     req.ShippingData,
		PaymentID:        req.PaymentInfo.ID,
		PaymentStatus:    req.PaymentInfo.Status,
		ProductsQuantity: req.ProductsQuantity,
		TotalPrice:       req.TotalPrice,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err = d.orders.CreateOrder(ctx, tx, order); err != nil {
		d.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]model.OrderItem, len(req.OrderedProducts))
	for i, product := range req.OrderedProducts {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ProductID,
			Name:      product.Name,
			Quantity:  product.Quantity,
			Cost:      product.UnitCost(),
		}
	}

	if err = d.orders.CreateOrderItems(ctx, tx, items); err != nil {
		d.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		d.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	d.logger.Info().
		Str("order_id", order.ID.String()).
		Str("buyer_id", order.BuyerID).
		Str("payment_id", order.PaymentID).
		Int("item_count", len(items)).
		Float64("total_price", order.TotalPrice).
		Msg("order created successfully")

	if pubErr := d.publisher.PublishOrderCreated(ctx, events.NewOrderCreated(order, items)); pubErr != nil {
		d.logger.Error().Err(pubErr).Str("order_id", order.ID.String()).Msg("failed to publish order event")
	}

	if d.receipts != nil {
		r := receipt.New(order, items)
		if saveErr := d.receipts.Save(ctx, r.Key(), r); saveErr != nil {
			d.logger.Error().Err(saveErr).Str("order_id", order.ID.String()).Msg("failed to archive receipt")
		}
	}

	return order, items, nil
}

// Close stops accepting orders and waits for in-flight ones to finish or
// for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info().Msg("order dispatcher drained")
		return nil
	case <-ctx.Done():
		d.logger.Warn().Msg("order dispatcher closed with orders still in flight")
		return fmt.Errorf("failed to drain order dispatcher: %w", ctx.Err())
	}
}

// validateOrderRequest validates the order request.
func validateOrderRequest(kind string, req *model.OrderRequest) error {
	if kind != model.OrderKindNew {
		return fmt.Errorf("%w: %q", model.ErrUnknownKind, kind)
	}

	if req == nil || len(req.OrderedProducts) == 0 {
		return model.ErrEmptyOrder
	}

	for i, product := range req.OrderedProducts {
		if product.ProductID == "" {
			return fmt.Errorf("%w: item %d has no product ID", model.ErrEmptyOrder, i)
		}
	}

	return nil
}
