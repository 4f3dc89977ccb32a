package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type TransactionRepository struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) Create(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Enforce the same uniqueness the postgres index provides for
	// periodic events.
	if transaction.PeriodKey != "" {
		for _, existing := range r.transactions {
			if existing.AccountID == transaction.AccountID &&
				existing.EventKind == transaction.EventKind &&
				existing.PeriodKey == transaction.PeriodKey {
				return domain.Transaction{}, domain.ErrDuplicateEvent
			}
		}
	}

	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	transaction.CreatedAt = time.Now().UTC()
	r.transactions = append(r.transactions, transaction)
	return transaction, nil
}

func (r *TransactionRepository) HasEvent(_ context.Context, accountID string, kind domain.EventKind, periodKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, txn := range r.transactions {
		if txn.AccountID == accountID && txn.EventKind == kind && txn.PeriodKey == periodKey && !txn.Reversed {
			return true, nil
		}
	}
	return false, nil
}

func (r *TransactionRepository) HasEventInRange(_ context.Context, accountID string, kind domain.EventKind, from, to time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fromDay, toDay := clock.Truncate(from), clock.Truncate(to)
	for _, txn := range r.transactions {
		if txn.AccountID != accountID || txn.EventKind != kind || txn.Reversed {
			continue
		}
		// Range checks go by value date so a catch-up posting counts
		// toward the period it settles, not the day it was run.
		day := clock.Truncate(txn.ValueDate)
		if !day.Before(fromDay) && !day.After(toDay) {
			return true, nil
		}
	}
	return false, nil
}

func (r *TransactionRepository) HasAnyEvent(_ context.Context, accountID string, kind domain.EventKind) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, txn := range r.transactions {
		if txn.AccountID == accountID && txn.EventKind == kind && !txn.Reversed {
			return true, nil
		}
	}
	return false, nil
}

func (r *TransactionRepository) SumAmountByKind(_ context.Context, accountID string, kind domain.EventKind, from, to time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	fromDay, toDay := clock.Truncate(from), clock.Truncate(to)
	for _, txn := range r.transactions {
		if txn.AccountID != accountID || txn.EventKind != kind || txn.Reversed {
			continue
		}
		day := clock.Truncate(txn.ValueDate)
		if !day.Before(fromDay) && !day.After(toDay) {
			sum = sum.Add(txn.Amount)
		}
	}
	return sum, nil
}

func (r *TransactionRepository) ListByAccount(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transaction, 0)
	for _, txn := range r.transactions {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
