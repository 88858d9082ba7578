// Package storefront is the client-side cart and catalog state machine:
// per-product variant selectors, a persistent cart, and the checkout
// handoff to the order intake API. It is presentation-free; a UI layer
// observes state changes through the badge and acknowledgment hooks.
package storefront

import "sync"

// Storage is client-local key/value persistence, the shape of a browser
// localStorage. Values are serialized documents replaced whole on every
// write. Single-goroutine ownership is assumed; two sessions sharing one
// Storage can lose writes, a known limitation carried over from the
// single-tab origin of this design.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemoryStorage is the in-memory Storage used outside a browser context.
type MemoryStorage struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{m: map[string]string{}}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *MemoryStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}
