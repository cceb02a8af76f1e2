package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkout-kart/internal/checkout"
	"checkout-kart/internal/model"

	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	store  CheckoutStore
	gate   *checkout.Gate
	route  string
	now    func() time.Time
	logger zerolog.Logger

	mu       sync.Mutex
	reactors map[string]*checkout.Reactor
}

// Option configures the checkout service.
type Option func(*checkoutService)

// WithClock overrides the clock used for expiry checks and payment identifiers.
func WithClock(now func() time.Time) Option {
	return func(s *checkoutService) {
		s.now = now
	}
}

// NewCheckoutService creates a checkout service. After an order is added the
// buyer is sent to confirmationRoute.
func NewCheckoutService(store CheckoutStore, confirmationRoute string, logger zerolog.Logger, opts ...Option) CheckoutService {
	s := &checkoutService{
		store:    store,
		route:    confirmationRoute,
		now:      time.Now,
		logger:   logger.With().Str("service", "checkout").Logger(),
		reactors: make(map[string]*checkout.Reactor),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.gate = checkout.NewGate(store, store, logger, checkout.WithClock(s.now))
	return s
}

// Submit validates the payment form and dispatches the order.
func (s *checkoutService) Submit(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req.BuyerID == "" {
		return nil, fmt.Errorf("%w: buyerId", model.ErrMissingField)
	}

	form, err := checkout.NewFormFromRequest(req, s.now)
	if err != nil {
		return nil, fmt.Errorf("failed to fill payment form: %w", err)
	}

	sub, err := s.gate.Submit(ctx, form, req.BuyerID, req.ProductID)
	if err != nil {
		return nil, err
	}

	return &model.CheckoutResponse{
		Mode:             sub.Mode,
		PaymentMethod:    form.PaymentMethod(),
		PaymentInfo:      sub.Request.PaymentInfo,
		ProductsQuantity: sub.Request.ProductsQuantity,
		TotalPrice:       sub.Request.TotalPrice,
		Status:           s.store.OrderStatus(req.BuyerID),
	}, nil
}

// Totals previews the order a submit would build.
func (s *checkoutService) Totals(ctx context.Context, buyerID, productID string) (*model.TotalsResponse, error) {
	buyer, err := s.store.CurrentBuyer(ctx, buyerID)
	if err != nil {
		s.logger.Error().Err(err).Str("buyer_id", buyerID).Msg("failed to read buyer")
		return nil, err
	}
	if buyer == nil {
		return nil, model.ErrBuyerNotFound
	}

	if productID == "" {
		totals := checkout.CartTotals(buyer.Cart)
		return &model.TotalsResponse{
			Mode:             model.OrderModeCart,
			ProductsQuantity: totals.Quantity,
			TotalPrice:       totals.Price,
		}, nil
	}

	item, err := s.store.CartProduct(ctx, buyerID, productID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("buyer_id", buyerID).
			Str("product_id", productID).
			Msg("failed to read cart product")
		return nil, err
	}
	if item == nil {
		return nil, model.ErrProductNotFound
	}

	totals := checkout.ItemTotals(item)
	return &model.TotalsResponse{
		Mode:             model.OrderModeSingle,
		ProductsQuantity: totals.Quantity,
		TotalPrice:       totals.Price,
	}, nil
}

// CheckExpiry validates the expiry field as typed.
func (s *checkoutService) CheckExpiry(expDate string) *model.ExpiryResponse {
	expired := checkout.IsExpired(expDate, s.now())
	return &model.ExpiryResponse{
		Expired:    expired,
		HelperText: checkout.ExpiryHelper(expired),
	}
}

// Status reports the buyer's order status and the reaction it triggers.
// Buyers without a dispatched order have nothing to react to and get no
// reactor.
func (s *checkoutService) Status(buyerID string) *model.StatusResponse {
	status, generation := s.store.OrderSnapshot(buyerID)
	if generation == 0 {
		return &model.StatusResponse{Status: status, Action: model.ReactionNone}
	}
	reaction := s.reactor(buyerID).ObserveGeneration(generation, status)

	view := &viewRecorder{}
	reaction.Apply(view, view)

	resp := &model.StatusResponse{
		Status:  status,
		Action:  model.ReactionNone,
		Route:   view.route,
		Message: view.message,
	}
	switch {
	case view.route != "":
		resp.Action = model.ReactionNavigate
		s.logger.Info().Str("buyer_id", buyerID).Str("route", view.route).Msg("order added, navigating to confirmation")
	case view.message != "":
		resp.Action = model.ReactionPopup
		s.logger.Warn().Str("buyer_id", buyerID).Str("status", status.String()).Msg("order not added")
	}
	return resp
}

// reactor returns the buyer's reactor, creating it on first use.
func (s *checkoutService) reactor(buyerID string) *checkout.Reactor {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reactors[buyerID]
	if !ok {
		r = checkout.NewReactor(s.route)
		s.reactors[buyerID] = r
	}
	return r
}

// viewRecorder captures a reaction for the status response.
type viewRecorder struct {
	route   string
	message string
}

func (v *viewRecorder) Navigate(route string) { v.route = route }

func (v *viewRecorder) Show(message string) { v.message = message }
