// Package cart implements the shopping cart store: the single source of
// truth for the session's cart contents. All mutation goes through the
// store's methods; readers get consistent snapshots and derived totals are
// recomputed from the snapshot on every read, never cached.
package cart

import (
	"sync"

	"go.uber.org/zap"

	"storefront/internal/catalog"
)

// Line is one product entry in the cart paired with its quantity.
// Invariant: Quantity >= 1 for every line held by a Store; a line whose
// quantity would drop below 1 is removed instead.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal is the line's extended price.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Store owns the cart for the duration of a browsing session. It starts
// empty and is mutated only through Add, Remove, SetQuantity and Clear.
// Mutations are serialized by a mutex so the invariants hold even when the
// store is shared across goroutines.
type Store struct {
	mu     sync.RWMutex
	lines  []Line // insertion order == display order
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger for mutation debug logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an empty cart store.
func NewStore(opts ...Option) *Store {
	s := &Store{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add puts one unit of p in the cart. If a line for p already exists its
// quantity is incremented; otherwise a new line is appended with quantity 1.
// Add never fails; repeated calls accumulate quantity.
func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID {
			s.lines[i].Quantity++
			s.logger.Debug("cart add", zap.Int("product", p.ID), zap.Int("quantity", s.lines[i].Quantity))
			return
		}
	}
	s.lines = append(s.lines, Line{Product: p, Quantity: 1})
	s.logger.Debug("cart add", zap.Int("product", p.ID), zap.Int("quantity", 1))
}

// Remove deletes the line for productID. Removing an absent id is a no-op,
// not an error.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID int) {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.logger.Debug("cart remove", zap.Int("product", productID))
			return
		}
	}
}

// SetQuantity sets the line's quantity to n. A quantity below 1 removes the
// line entirely; an unknown product id is a no-op.
func (s *Store) SetQuantity(productID, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 {
		s.removeLocked(productID)
		return
	}
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = n
			s.logger.Debug("cart set quantity", zap.Int("product", productID), zap.Int("quantity", n))
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.logger.Debug("cart cleared")
}

// Lines returns a snapshot of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Line(nil), s.lines...)
}

// Len reports the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// TotalItems is the sum of quantities over all lines.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of extended prices over all lines (the order
// subtotal).
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}
