package geocache

import (
	"context"
	"sync"

	"github.com/lodestar-geo/place-search-service/internal/domain"
)

// MemoryStore is a thread-safe LRU store for geocode results.
type MemoryStore struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.PlaceResult
	prev  *entry
	next  *entry
}

// NewMemoryStore creates an LRU store bounded to maxEntries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (domain.PlaceResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return domain.PlaceResult{}, false, nil
	}
	s.moveToFront(e)
	return e.value, true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value domain.PlaceResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		s.moveToFront(e)
		return nil
	}

	e := &entry{key: key, value: value}
	s.entries[key] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
	return nil
}

func (s *MemoryStore) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *MemoryStore) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *MemoryStore) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *MemoryStore) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.key)
	s.remove(s.tail)
}
