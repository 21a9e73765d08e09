package contact

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/contactform/pkg/contactform"
)

// StateStore persists form snapshots between requests.
type StateStore interface {
	// Load returns ErrStateNotFound when formID has no live state.
	Load(ctx context.Context, formID string) (contactform.View, error)
	Save(ctx context.Context, formID string, view contactform.View) error
	Delete(ctx context.Context, formID string) error
}

type memoryEntry struct {
	view      contactform.View
	expiresAt time.Time
}

// MemoryStateStore keeps form state in process memory. Entries expire ttl
// after their last save.
type MemoryStateStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// MemoryStateStoreOption configures a MemoryStateStore.
type MemoryStateStoreOption func(*MemoryStateStore)

// WithStateClock overrides the time source.
func WithStateClock(now func() time.Time) MemoryStateStoreOption {
	return func(s *MemoryStateStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStateStore creates a store. A positive cleanupInterval starts a
// goroutine that evicts expired entries until Close.
func NewMemoryStateStore(ttl, cleanupInterval time.Duration, opts ...MemoryStateStoreOption) *MemoryStateStore {
	s := &MemoryStateStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

func (s *MemoryStateStore) Load(_ context.Context, formID string) (contactform.View, error) {
	s.mu.RLock()
	e, ok := s.entries[formID]
	s.mu.RUnlock()

	if !ok || !s.now().Before(e.expiresAt) {
		return contactform.View{}, ErrStateNotFound
	}
	// Restore copies errors and the record so callers cannot mutate the entry.
	return contactform.Restore(e.view).View(), nil
}

func (s *MemoryStateStore) Save(_ context.Context, formID string, view contactform.View) error {
	snapshot := contactform.Restore(view).View()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[formID] = memoryEntry{view: snapshot, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStateStore) Delete(_ context.Context, formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, formID)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine.
func (s *MemoryStateStore) Close() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *MemoryStateStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStateStore) removeExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
