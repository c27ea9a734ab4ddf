// Package cart holds the per-session pending bill. Carts live only in process
// memory and make no persistence promise across restarts.
package cart

import (
	"sync"

	"store-service/internal/model"
)

// Item is one pending bill line. Name and unit price are snapshotted when the
// item is added and are not re-read at commit time; that snapshot is the
// price the bill will carry.
type Item struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Store keeps one cart per session id. Sessions are never shared between
// callers; the mutex only protects the map itself against concurrent requests
// from different sessions.
type Store struct {
	mu    sync.Mutex
	carts map[string][]Item
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string][]Item)}
}

// AddItem appends a quantity-1 line snapshotting the product's current name
// and price. Adding the same product again appends a second independent line;
// lines are never merged. That append-only policy is deliberate.
func (s *Store) AddItem(sessionID string, p *model.Product) Item {
	item := Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Subtotal:  p.Price,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = append(s.carts[sessionID], item)
	return item
}

// Items returns a copy of the session's lines in insertion order.
func (s *Store) Items(sessionID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.carts[sessionID]))
	copy(items, s.carts[sessionID])
	return items
}

// Total sums the session's subtotals; zero for an empty or unknown session.
func (s *Store) Total(sessionID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.carts[sessionID] {
		total += item.Subtotal
	}
	return total
}

// Clear empties the session's cart. Called once, after a successful commit.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
