package contact

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// Repository archives successful submissions.
type Repository interface {
	Create(ctx context.Context, s Submission) error
	// List returns up to limit submissions, newest first.
	List(ctx context.Context, limit int) ([]Submission, error)
}

// MemoryRepository is a Repository for development and tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	submissions []Submission
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, s)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, limit int) ([]Submission, error) {
	r.mu.RLock()
	out := slices.Clone(r.submissions)
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b Submission) int {
		return cmp.Compare(b.SubmittedAt.UnixNano(), a.SubmittedAt.UnixNano())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
