package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type BranchRepository struct {
	db *sql.DB
}

func NewBranchRepository(db *sql.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) GetAll(ctx context.Context) ([]domain.Branch, error) {
	const query = `SELECT branch_code, branch_name FROM fd_branches ORDER BY branch_code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list fd branches: %w", err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(&branch.BranchCode, &branch.BranchName); err != nil {
			return nil, fmt.Errorf("scan fd branch row: %w", err)
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fd branch rows: %w", err)
	}

	return branches, nil
}

func (r *BranchRepository) Exists(ctx context.Context, branchCode string) (bool, error) {
	const query = `SELECT COUNT(1) FROM fd_branches WHERE branch_code = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, branchCode).Scan(&count); err != nil {
		return false, fmt.Errorf("check fd branch %s: %w", branchCode, err)
	}
	return count > 0, nil
}
