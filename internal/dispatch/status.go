package dispatch

import (
	"sync"

	"checkout-kart/internal/model"
)

type statusEntry struct {
	status     model.OrderStatus
	generation uint64
}

// StatusStore holds the last order status published per buyer. Every
// dispatched order opens a new generation for its buyer; outcomes of older
// generations are dropped.
type StatusStore struct {
	mu      sync.RWMutex
	entries map[string]statusEntry
}

// NewStatusStore creates an empty status store.
func NewStatusStore() *StatusStore {
	return &StatusStore{
		entries: make(map[string]statusEntry),
	}
}

// Get returns the buyer's order status, idle if none was published.
func (s *StatusStore) Get(buyerID string) model.OrderStatus {
	status, _ := s.Snapshot(buyerID)
	return status
}

// Snapshot returns the buyer's order status together with the generation it
// belongs to. Generation 0 means no order was dispatched for the buyer.
func (s *StatusStore) Snapshot(buyerID string) (model.OrderStatus, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[buyerID]
	if !ok {
		return model.OrderStatusIdle, 0
	}
	return entry.status, entry.generation
}

// Begin opens a new generation for the buyer with status idle and returns it.
func (s *StatusStore) Begin(buyerID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[buyerID]
	entry.generation++
	entry.status = model.OrderStatusIdle
	s.entries[buyerID] = entry
	return entry.generation
}

// Publish records the outcome of the order dispatched in generation. It
// reports false and changes nothing when a newer order has been dispatched
// since.
func (s *StatusStore) Publish(buyerID string, generation uint64, status model.OrderStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[buyerID]
	if !ok || entry.generation != generation {
		return false
	}
	entry.status = status
	s.entries[buyerID] = entry
	return true
}
