// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds live bingo cards for the HTTP surface.
//
// Characteristics:
//   - Stores bingo.Card values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Update runs read, change and write under one lock, so transitions on
//     the same card are serialized.
//   - State is lost when the process restarts; idle cards are dropped by Sweep.
//   - Get returns ErrNotFound for missing card IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/walkbingo/internal/bingo"
)

// ErrNotFound is returned by Get and Update for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for live cards.
type Store interface {
	// Save persists or replaces a card.
	Save(ctx context.Context, c bingo.Card) error

	// Get retrieves a card by ID.
	Get(ctx context.Context, id string) (bingo.Card, error)

	// Update applies fn to the stored card and saves the result atomically.
	// When fn fails the stored card is left as it was.
	Update(ctx context.Context, id string, fn func(bingo.Card) (bingo.Card, error)) (bingo.Card, error)

	// Delete drops a card. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep drops cards not written since before and returns their IDs.
	Sweep(ctx context.Context, before time.Time) []string
}

// entry is a stored card plus its last write time.
type entry struct {
	card    bingo.Card
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards cards map
	cards map[string]entry // keyed by Card.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{cards: make(map[string]entry), now: time.Now}
}

// Save adds or replaces the card in the map.
func (m *memory) Save(ctx context.Context, c bingo.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[c.ID] = entry{card: c, touched: m.now()}
	return nil
}

// Get looks up a card by ID.
// Cards are values, so callers cannot mutate the stored copy.
func (m *memory) Get(ctx context.Context, id string) (bingo.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.cards[id]; ok {
		return e.card, nil
	}
	return bingo.Card{}, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(bingo.Card) (bingo.Card, error)) (bingo.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.cards[id]
	if !ok {
		return bingo.Card{}, ErrNotFound
	}
	next, err := fn(e.card)
	if err != nil {
		return bingo.Card{}, err
	}
	m.cards[id] = entry{card: next, touched: m.now()}
	return next, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cards, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, before time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var gone []string
	for id, e := range m.cards {
		if e.touched.Before(before) {
			delete(m.cards, id)
			gone = append(gone, id)
		}
	}
	return gone
}
