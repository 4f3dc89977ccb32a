package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

// maxSequence is the largest value the six-digit account number slot
// can hold.
const maxSequence = 999999

// SequenceRepository hands out per-branch account number sequences.
// The upsert increments atomically, so concurrent openings on the
// same branch never see the same value.
type SequenceRepository struct {
	db    *sql.DB
	start int64
}

func NewSequenceRepository(db *sql.DB, start int64) *SequenceRepository {
	if start <= 0 {
		start = 100000
	}
	return &SequenceRepository{db: db, start: start}
}

func (r *SequenceRepository) Next(ctx context.Context, branchCode string) (int64, error) {
	const query = `
INSERT INTO fd_account_sequences (branch_code, current_value)
VALUES ($1, $2)
ON CONFLICT (branch_code)
DO UPDATE SET current_value = fd_account_sequences.current_value + 1, updated_at = NOW()
RETURNING current_value`

	var value int64
	if err := r.db.QueryRowContext(ctx, query, branchCode, r.start).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence for branch %s: %w", branchCode, err)
	}
	if value > maxSequence {
		return 0, domain.ErrSequenceExhausted
	}

	return value, nil
}

func (r *SequenceRepository) Current(ctx context.Context, branchCode string) (int64, error) {
	const query = `SELECT current_value FROM fd_account_sequences WHERE branch_code = $1`

	var value int64
	if err := r.db.QueryRowContext(ctx, query, branchCode).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrRecordNotFound
		}
		return 0, fmt.Errorf("current sequence for branch %s: %w", branchCode, err)
	}

	return value, nil
}
