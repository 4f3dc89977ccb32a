package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type BalanceSnapshotRepository struct {
	db *sql.DB
}

func NewBalanceSnapshotRepository(db *sql.DB) *BalanceSnapshotRepository {
	return &BalanceSnapshotRepository{db: db}
}

func (r *BalanceSnapshotRepository) Append(ctx context.Context, snapshot domain.BalanceSnapshot) (domain.BalanceSnapshot, error) {
	const query = `
INSERT INTO fd_balance_snapshots (
	account_id,
	balance_type,
	amount,
	as_of_date,
	description
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		snapshot.AccountID,
		snapshot.BalanceType,
		snapshot.Amount,
		snapshot.AsOfDate,
		snapshot.Description,
	).Scan(&snapshot.ID, &snapshot.CreatedAt); err != nil {
		return domain.BalanceSnapshot{}, fmt.Errorf("append fd balance snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *BalanceSnapshotRepository) Latest(ctx context.Context, accountID string, balanceType domain.BalanceType) (domain.BalanceSnapshot, error) {
	// Ties on as_of_date resolve to the most recently inserted row.
	const query = `
SELECT id, account_id, balance_type, amount, as_of_date, description, created_at
FROM fd_balance_snapshots
WHERE account_id = $1 AND balance_type = $2
ORDER BY as_of_date DESC, created_at DESC
LIMIT 1`

	var snapshot domain.BalanceSnapshot
	if err := r.db.QueryRowContext(ctx, query, accountID, balanceType).Scan(
		&snapshot.ID,
		&snapshot.AccountID,
		&snapshot.BalanceType,
		&snapshot.Amount,
		&snapshot.AsOfDate,
		&snapshot.Description,
		&snapshot.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BalanceSnapshot{}, domain.ErrRecordNotFound
		}
		return domain.BalanceSnapshot{}, fmt.Errorf("latest fd balance snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *BalanceSnapshotRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.BalanceSnapshot, error) {
	const query = `
SELECT id, account_id, balance_type, amount, as_of_date, description, created_at
FROM fd_balance_snapshots
WHERE account_id = $1
ORDER BY as_of_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list fd balance snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]domain.BalanceSnapshot, 0)
	for rows.Next() {
		var snapshot domain.BalanceSnapshot
		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.AccountID,
			&snapshot.BalanceType,
			&snapshot.Amount,
			&snapshot.AsOfDate,
			&snapshot.Description,
			&snapshot.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fd balance snapshot row: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fd balance snapshot rows: %w", err)
	}

	return snapshots, nil
}
