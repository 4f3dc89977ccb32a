package repo_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type BranchRepository interface {
	GetAll(ctx context.Context) ([]domain.Branch, error)
	Exists(ctx context.Context, branchCode string) (bool, error)
}
