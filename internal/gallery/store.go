package gallery

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultStoreSize bounds the number of visitors whose modal state is held in memory.
	DefaultStoreSize = 10000
	// DefaultStoreTTL drops state for visitors idle longer than this.
	DefaultStoreTTL = 12 * time.Hour
)

// Store holds the authoritative modal state per session id. Requests that carry the same
// session cookie are applied one after another against the stored state, never against
// the cookie snapshot each request happened to send.
//
// The cookie copy only seeds an id the store has not seen, e.g. after a restart.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, Modal]
}

// NewStore returns a Store bounded by size entries, each expiring ttl after its last write.
// Non-positive arguments select the defaults.
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultStoreSize
	}
	if ttl <= 0 {
		ttl = DefaultStoreTTL
	}
	return &Store{cache: expirable.NewLRU[string, Modal](size, nil, ttl)}
}

// Load returns the state for id, falling back to seed when the store has none.
func (s *Store) Load(id string, seed Modal) Modal {
	if id == "" {
		return seed.clone()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.cache.Get(id); ok {
		return m.clone()
	}
	return seed.clone()
}

// Update applies fn to the state for id and reports whether it changed. A change bumps Rev.
func (s *Store) Update(id string, seed Modal, fn func(*Modal) bool) (Modal, bool) {
	if id == "" {
		m := seed.clone()
		if fn(&m) {
			m.Rev++
			return m, true
		}
		return m, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.cache.Get(id)
	if !ok {
		cur = seed
	}
	m := cur.clone()
	changed := fn(&m)
	if changed {
		m.Rev++
	}
	if changed || !ok {
		s.cache.Add(id, m)
	}
	return m.clone(), changed
}

// Len reports how many sessions have state in memory.
func (s *Store) Len() int {
	return s.cache.Len()
}
