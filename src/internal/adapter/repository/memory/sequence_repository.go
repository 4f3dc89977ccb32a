package memory

import (
	"context"
	"sync"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

// SequenceRepository hands out per-branch account number sequences
// under a mutex; the postgres implementation relies on an atomic
// upsert instead.
type SequenceRepository struct {
	mu        sync.Mutex
	start     int64
	sequences map[string]int64
}

func NewSequenceRepository(start int64) *SequenceRepository {
	return &SequenceRepository{
		start:     start,
		sequences: make(map[string]int64),
	}
}

func (r *SequenceRepository) Next(_ context.Context, branchCode string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sequences[branchCode]
	if !ok {
		r.sequences[branchCode] = r.start
		return r.start, nil
	}

	next := current + 1
	if next > 999999 {
		return 0, domain.ErrSequenceExhausted
	}
	r.sequences[branchCode] = next
	return next, nil
}

func (r *SequenceRepository) Current(_ context.Context, branchCode string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sequences[branchCode]
	if !ok {
		return 0, domain.ErrRecordNotFound
	}
	return current, nil
}
