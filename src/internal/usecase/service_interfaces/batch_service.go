package service_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

// BatchRunner is one batch step: daily accrual, interest
// capitalization or maturity processing. Runs are idempotent for a
// given batch date.
type BatchRunner interface {
	Run(ctx context.Context) (domain.RunReport, error)
}
