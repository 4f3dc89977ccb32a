package repo_interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListActive(ctx context.Context) ([]domain.Account, error)
	// ListMatured returns ACTIVE accounts whose maturity date is on or
	// before asOf (catch-up semantics).
	ListMatured(ctx context.Context, asOf time.Time) ([]domain.Account, error)
	UpdatePrincipal(ctx context.Context, accountID string, principal decimal.Decimal) error
	UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, closureDate *time.Time) error
	// Renew resets the contract dates, principal and projected maturity
	// value for a new term on the same record.
	Renew(ctx context.Context, accountID string, principal, maturityAmount decimal.Decimal, effectiveDate, maturityDate time.Time) error
}
