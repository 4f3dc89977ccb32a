package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO fd_transactions (
	account_id,
	reference,
	type,
	event_kind,
	period_key,
	amount,
	transaction_date,
	value_date,
	description,
	principal_after,
	interest_after,
	total_after,
	performed_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transaction.AccountID,
		transaction.Reference,
		transaction.Type,
		transaction.EventKind,
		nullableEmpty(transaction.PeriodKey),
		transaction.Amount,
		transaction.TransactionDate,
		transaction.ValueDate,
		transaction.Description,
		transaction.PrincipalAfter,
		transaction.InterestAfter,
		transaction.TotalAfter,
		transaction.PerformedBy,
	).Scan(&transaction.ID, &transaction.CreatedAt); err != nil {
		// The partial unique index on (account_id, event_kind,
		// period_key) is the database-level idempotency backstop.
		if isUniqueViolation(err) {
			return domain.Transaction{}, domain.ErrDuplicateEvent
		}
		return domain.Transaction{}, fmt.Errorf("create fd transaction: %w", err)
	}

	return transaction, nil
}

func (r *TransactionRepository) HasEvent(ctx context.Context, accountID string, kind domain.EventKind, periodKey string) (bool, error) {
	const query = `
SELECT COUNT(1) FROM fd_transactions
WHERE account_id = $1 AND event_kind = $2 AND period_key = $3 AND NOT reversed`

	var count int
	if err := r.db.QueryRowContext(ctx, query, accountID, kind, periodKey).Scan(&count); err != nil {
		return false, fmt.Errorf("check fd transaction event: %w", err)
	}
	return count > 0, nil
}

// HasEventInRange ranges over value dates, so a catch-up posting
// counts toward the period it settles rather than the day it was run.
func (r *TransactionRepository) HasEventInRange(ctx context.Context, accountID string, kind domain.EventKind, from, to time.Time) (bool, error) {
	const query = `
SELECT COUNT(1) FROM fd_transactions
WHERE account_id = $1 AND event_kind = $2 AND NOT reversed
  AND value_date >= $3 AND value_date <= $4`

	var count int
	if err := r.db.QueryRowContext(ctx, query, accountID, kind, from, to).Scan(&count); err != nil {
		return false, fmt.Errorf("check fd transaction event range: %w", err)
	}
	return count > 0, nil
}

func (r *TransactionRepository) HasAnyEvent(ctx context.Context, accountID string, kind domain.EventKind) (bool, error) {
	const query = `
SELECT COUNT(1) FROM fd_transactions
WHERE account_id = $1 AND event_kind = $2 AND NOT reversed`

	var count int
	if err := r.db.QueryRowContext(ctx, query, accountID, kind).Scan(&count); err != nil {
		return false, fmt.Errorf("check fd transaction any event: %w", err)
	}
	return count > 0, nil
}

func (r *TransactionRepository) SumAmountByKind(ctx context.Context, accountID string, kind domain.EventKind, from, to time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0) FROM fd_transactions
WHERE account_id = $1 AND event_kind = $2 AND NOT reversed
  AND value_date >= $3 AND value_date <= $4`

	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, accountID, kind, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum fd transaction amounts: %w", err)
	}
	return sum, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	const query = `
SELECT
	id,
	account_id,
	reference,
	type,
	event_kind,
	period_key,
	amount,
	transaction_date,
	value_date,
	description,
	principal_after,
	interest_after,
	total_after,
	performed_by,
	reversed,
	reversal_of_id,
	created_at
FROM fd_transactions
WHERE account_id = $1
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list fd transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			transaction  domain.Transaction
			periodKey    sql.NullString
			reversalOfID sql.NullString
		)
		if err := rows.Scan(
			&transaction.ID,
			&transaction.AccountID,
			&transaction.Reference,
			&transaction.Type,
			&transaction.EventKind,
			&periodKey,
			&transaction.Amount,
			&transaction.TransactionDate,
			&transaction.ValueDate,
			&transaction.Description,
			&transaction.PrincipalAfter,
			&transaction.InterestAfter,
			&transaction.TotalAfter,
			&transaction.PerformedBy,
			&transaction.Reversed,
			&reversalOfID,
			&transaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fd transaction row: %w", err)
		}
		if periodKey.Valid {
			transaction.PeriodKey = periodKey.String
		}
		if reversalOfID.Valid {
			transaction.ReversalOfID = &reversalOfID.String
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fd transaction rows: %w", err)
	}

	return transactions, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
