package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/domain/order"
)

// cartEntry is a stored cart with expiration
type cartEntry struct {
	cart      *order.Cart
	expiresAt time.Time
}

// InMemoryCartStore implements CartStore using an in-memory map.
// This is suitable for single-instance deployments and testing; a
// restart drops all carts, which the cart lifecycle allows.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   map[string]cartEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a new in-memory cart store.
// It starts a background goroutine to clean up expired carts.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	store := &InMemoryCartStore{
		ttl:      ttl,
		entries:  make(map[string]cartEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get returns the cart for a session, or (nil, nil) when absent or
// expired. The returned cart is a copy; mutations stay invisible to
// other sessions' requests until the caller puts it back.
func (s *InMemoryCartStore) Get(ctx context.Context, sessionID string) (*order.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[sessionID]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.cart.Clone(), nil
}

// Put stores a snapshot of the cart for its session, refreshing the
// TTL. The caller keeps its own copy, so later mutations do not leak
// into the store.
func (s *InMemoryCartStore) Put(ctx context.Context, cart *order.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[cart.SessionID] = cartEntry{
		cart:      cart.Clone(),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes the cart for a session
func (s *InMemoryCartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// Close stops the cleanup goroutine
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	return nil
}

// cleanupLoop periodically removes expired carts
func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *InMemoryCartStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for sessionID, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, sessionID)
		}
	}
}

// Ensure InMemoryCartStore implements CartStore
var _ CartStore = (*InMemoryCartStore)(nil)
