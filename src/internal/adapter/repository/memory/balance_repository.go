package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type BalanceSnapshotRepository struct {
	mu        sync.RWMutex
	snapshots []domain.BalanceSnapshot
}

func NewBalanceSnapshotRepository() *BalanceSnapshotRepository {
	return &BalanceSnapshotRepository{}
}

func (r *BalanceSnapshotRepository) Append(_ context.Context, snapshot domain.BalanceSnapshot) (domain.BalanceSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	snapshot.CreatedAt = time.Now().UTC()
	r.snapshots = append(r.snapshots, snapshot)
	return snapshot, nil
}

func (r *BalanceSnapshotRepository) Latest(_ context.Context, accountID string, balanceType domain.BalanceType) (domain.BalanceSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest domain.BalanceSnapshot
	found := false
	for _, snap := range r.snapshots {
		if snap.AccountID != accountID || snap.BalanceType != balanceType {
			continue
		}
		// Later insertion wins on equal as-of dates.
		if !found || !clock.Truncate(snap.AsOfDate).Before(clock.Truncate(latest.AsOfDate)) {
			latest = snap
			found = true
		}
	}
	if !found {
		return domain.BalanceSnapshot{}, domain.ErrRecordNotFound
	}
	return latest, nil
}

func (r *BalanceSnapshotRepository) ListByAccount(_ context.Context, accountID string) ([]domain.BalanceSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.BalanceSnapshot, 0)
	for _, snap := range r.snapshots {
		if snap.AccountID == accountID {
			out = append(out, snap)
		}
	}
	return out, nil
}
