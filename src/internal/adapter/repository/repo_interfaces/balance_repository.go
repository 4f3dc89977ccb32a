package repo_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type BalanceSnapshotRepository interface {
	Append(ctx context.Context, snapshot domain.BalanceSnapshot) (domain.BalanceSnapshot, error)
	// Latest returns the snapshot with the most recent as-of date for
	// one balance category. domain.ErrRecordNotFound when the account
	// has no snapshot of that category yet.
	Latest(ctx context.Context, accountID string, balanceType domain.BalanceType) (domain.BalanceSnapshot, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.BalanceSnapshot, error)
}
