package repo_interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	// HasEvent reports whether a transaction with the given typed
	// idempotency marker already exists for the account.
	HasEvent(ctx context.Context, accountID string, kind domain.EventKind, periodKey string) (bool, error)
	// HasEventInRange reports whether a non-reversed transaction of
	// the kind exists with a value date within [from, to].
	HasEventInRange(ctx context.Context, accountID string, kind domain.EventKind, from, to time.Time) (bool, error)
	// HasAnyEvent reports whether any non-reversed transaction of the
	// kind exists for the account, regardless of period.
	HasAnyEvent(ctx context.Context, accountID string, kind domain.EventKind) (bool, error)
	// SumAmountByKind totals non-reversed transaction amounts of the
	// given kind value-dated within [from, to].
	SumAmountByKind(ctx context.Context, accountID string, kind domain.EventKind, from, to time.Time) (decimal.Decimal, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
}
