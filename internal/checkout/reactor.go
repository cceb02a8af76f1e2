package checkout

import (
	"sync"

	"checkout-kart/internal/model"
)

// DefaultConfirmationRoute is the view shown after an order has been added.
const DefaultConfirmationRoute = "/Aftermath"

// Reaction is what the payment view does in response to an order status.
type Reaction struct {
	Action  model.ReactionAction
	Route   string
	Message string
}

// NoReaction leaves the view untouched.
var NoReaction = Reaction{Action: model.ReactionNone}

// Apply performs the reaction through the navigation and popup ports.
func (r Reaction) Apply(nav Navigator, notifier Notifier) {
	switch r.Action {
	case model.ReactionNavigate:
		nav.Navigate(r.Route)
	case model.ReactionPopup:
		notifier.Show(r.Message)
	}
}

// Reactor turns order status changes into one-shot reactions.
type Reactor struct {
	mu         sync.Mutex
	generation uint64
	last       model.OrderStatus
	table      map[model.OrderStatus]Reaction
}

// NewReactor creates a reactor that navigates to confirmationRoute once an
// order has been added.
func NewReactor(confirmationRoute string) *Reactor {
	if confirmationRoute == "" {
		confirmationRoute = DefaultConfirmationRoute
	}
	return &Reactor{
		table: map[model.OrderStatus]Reaction{
			model.OrderStatusIdle:   NoReaction,
			model.OrderStatusAdded:  {Action: model.ReactionNavigate, Route: confirmationRoute},
			model.OrderStatusFailed: {Action: model.ReactionPopup, Message: model.ErrOrderFailed.Message},
			model.OrderStatusError:  {Action: model.ReactionPopup, Message: model.ErrNetworkError.Message},
		},
	}
}

// Observe feeds the current status to the reactor. A reaction is returned
// only when the status differs from the previously observed one.
func (r *Reactor) Observe(status model.OrderStatus) Reaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.observe(status)
}

// ObserveGeneration is Observe for a status that belongs to the order
// dispatched in generation. A newer generation starts from idle, so its
// outcome reacts even when it repeats the previous one. Statuses of older
// generations are ignored.
func (r *Reactor) ObserveGeneration(generation uint64, status model.OrderStatus) Reaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case generation < r.generation:
		return NoReaction
	case generation > r.generation:
		r.generation = generation
		r.last = model.OrderStatusIdle
	}
	return r.observe(status)
}

func (r *Reactor) observe(status model.OrderStatus) Reaction {
	if status == r.last {
		return NoReaction
	}
	r.last = status

	reaction, ok := r.table[status]
	if !ok {
		return NoReaction
	}
	return reaction
}
