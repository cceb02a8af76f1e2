package checkout

import (
	"context"
	"fmt"
	"time"

	"checkout-kart/internal/model"

	"github.com/rs/zerolog"
)

// State is the submission state of a payment form.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateBlocked    State = "blocked"
	StateSubmitted  State = "submitted"
)

// Event drives the submission state machine.
type Event string

const (
	EventSubmit  Event = "submit"
	EventBlock   Event = "block"
	EventAccept  Event = "accept"
	EventDismiss Event = "dismiss"
)

// gateTransitions is the submission state machine. A submitted form may be
// submitted again: there is no submit lock.
var gateTransitions = map[State]map[Event]State{
	StateIdle: {
		EventSubmit: StateValidating,
	},
	StateValidating: {
		EventBlock:  StateBlocked,
		EventAccept: StateSubmitted,
	},
	StateBlocked: {
		EventDismiss: StateIdle,
	},
	StateSubmitted: {
		EventSubmit: StateValidating,
	},
}

// Transition returns the state reached from s on event.
func Transition(s State, event Event) (State, error) {
	next, ok := gateTransitions[s][event]
	if !ok {
		return s, fmt.Errorf("illegal submission transition from %s on %s", s, event)
	}
	return next, nil
}

// Submission is the result of an accepted submit.
type Submission struct {
	Mode    model.OrderMode
	Request *model.OrderRequest
}

// Gate validates a payment form and turns it into a dispatched order.
type Gate struct {
	reader   StoreReader
	commands StoreCommands
	logger   zerolog.Logger
	now      func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock overrides the clock used for payment identifiers.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

// NewGate creates a submission gate over the given store ports.
func NewGate(reader StoreReader, commands StoreCommands, logger zerolog.Logger, opts ...GateOption) *Gate {
	g := &Gate{
		reader:   reader,
		commands: commands,
		logger:   logger.With().Str("component", "submission-gate").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit runs the form through the gate. A non-empty productID selects the
// single-product order, otherwise the whole cart is ordered.
//
// Blocked submissions return a *model.DomainError and leave the form Idle.
// Accepted submissions dispatch the order and then remove the ordered items
// from the cart without waiting for the order outcome.
func (g *Gate) Submit(ctx context.Context, form *Form, buyerID, productID string) (*Submission, error) {
	if err := form.fire(EventSubmit); err != nil {
		return nil, err
	}

	if !form.CashOnDelivery() && form.Expired() {
		g.logger.Warn().
			Str("buyer_id", buyerID).
			Msg("submission blocked: card expired")
		return nil, g.block(form, model.ErrCardExpired)
	}

	if err := form.Validate(); err != nil {
		g.logger.Debug().Err(err).Str("buyer_id", buyerID).Msg("submission blocked: invalid payment fields")
		return nil, g.block(form, err)
	}

	buyer, err := g.reader.CurrentBuyer(ctx, buyerID)
	if err != nil {
		g.logger.Error().Err(err).Str("buyer_id", buyerID).Msg("failed to read buyer")
		return nil, g.block(form, fmt.Errorf("failed to read buyer: %w", err))
	}
	if buyer == nil {
		return nil, g.block(form, model.ErrBuyerNotFound)
	}

	payment := NewPaymentInfo(form.Input(), form.CashOnDelivery(), g.now())

	var sub *Submission
	if productID != "" {
		item, err := g.reader.CartProduct(ctx, buyerID, productID)
		if err != nil {
			g.logger.Error().Err(err).
				Str("buyer_id", buyerID).
				Str("product_id", productID).
				Msg("failed to fetch cart product")
			return nil, g.block(form, fmt.Errorf("failed to fetch cart product: %w", err))
		}
		if item == nil {
			return nil, g.block(form, model.ErrProductNotFound)
		}
		sub = &Submission{Mode: model.OrderModeSingle, Request: SingleOrder(buyer, item, payment)}
	} else {
		sub = &Submission{Mode: model.OrderModeCart, Request: CartOrder(buyer, payment)}
	}

	if err := g.commands.Dispatch(ctx, model.OrderKindNew, sub.Request); err != nil {
		g.logger.Error().Err(err).Str("buyer_id", buyerID).Msg("failed to dispatch order")
		return nil, g.block(form, fmt.Errorf("failed to dispatch order: %w", err))
	}

	// Cart cleanup follows the dispatch call, not the order outcome.
	if sub.Mode == model.OrderModeSingle {
		err = g.commands.RemoveProduct(ctx, buyerID, productID)
	} else {
		err = g.commands.RemoveAll(ctx, buyerID)
	}
	if err != nil {
		g.logger.Error().Err(err).
			Str("buyer_id", buyerID).
			Str("mode", string(sub.Mode)).
			Msg("failed to clear ordered items from cart")
	}

	if err := form.fire(EventAccept); err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("buyer_id", buyerID).
		Str("mode", string(sub.Mode)).
		Str("payment_status", string(payment.Status)).
		Int("products_quantity", sub.Request.ProductsQuantity).
		Float64("total_price", sub.Request.TotalPrice).
		Msg("order submitted")

	return sub, nil
}

// block moves the form through Blocked back to Idle and returns cause.
func (g *Gate) block(form *Form, cause error) error {
	if err := form.fire(EventBlock); err != nil {
		return err
	}
	if err := form.fire(EventDismiss); err != nil {
		return err
	}
	return cause
}

// CartOrder builds the order for the buyer's whole cart.
func CartOrder(buyer *model.Buyer, payment model.PaymentInfo) *model.OrderRequest {
	totals := CartTotals(buyer.Cart)
	products := make([]model.CartItem, len(buyer.Cart))
	copy(products, buyer.Cart)

	return &model.OrderRequest{
		Buyer:            buyer.ID,
		ShippingData:     buyer.ShippingData,
		OrderedProducts:  products,
		PaymentInfo:      payment,
		ProductsQuantity: totals.Quantity,
		TotalPrice:       totals.Price,
	}
}

// SingleOrder builds the order for one targeted cart item.
func SingleOrder(buyer *model.Buyer, item *model.CartItem, payment model.PaymentInfo) *model.OrderRequest {
	totals := ItemTotals(item)

	return &model.OrderRequest{
		Buyer:            buyer.ID,
		ShippingData:     buyer.ShippingData,
		OrderedProducts:  []model.CartItem{*item},
		PaymentInfo:      payment,
		ProductsQuantity: totals.Quantity,
		TotalPrice:       totals.Price,
	}
}
