package memcache

import (
	"sync"
	"time"
)

// Store is a process-local map whose entries expire.
type Store[V any] interface {
	Set(key string, value V, ttl time.Duration)
	Get(key string) (V, bool)
	Delete(key string)
	Len() int
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type TTLStore[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	now  func() time.Time
}

func NewTTLStore[V any]() *TTLStore[V] {
	return &TTLStore[V]{
		data: make(map[string]entry[V]),
		now:  time.Now,
	}
}

func (s *TTLStore[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{value: value, expiresAt: s.now().Add(ttl)}
}

func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (s *TTLStore[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep drops expired entries and reports how many went.
func (s *TTLStore[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// RevokedTokens remembers logged-out token ids until they would have expired anyway.
type RevokedTokens struct {
	store *TTLStore[struct{}]
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{store: NewTTLStore[struct{}]()}
}

func (r *RevokedTokens) Revoke(tokenID string, until time.Time) {
	ttl := time.Until(until)
	if tokenID == "" || ttl <= 0 {
		return
	}
	r.store.Set(tokenID, struct{}{}, ttl)
}

func (r *RevokedTokens) IsRevoked(tokenID string) bool {
	_, ok := r.store.Get(tokenID)
	return ok
}

func (r *RevokedTokens) Sweep() int { return r.store.Sweep() }
