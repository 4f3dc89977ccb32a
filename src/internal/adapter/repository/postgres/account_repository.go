package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

const accountColumns = `
	id,
	account_number,
	iban,
	customer_id,
	product_code,
	branch_code,
	principal_amount,
	interest_rate,
	custom_interest_rate,
	term_months,
	maturity_amount,
	effective_date,
	maturity_date,
	closure_date,
	interest_method,
	compounding_frequency,
	maturity_instruction,
	transfer_account,
	tds_applicable,
	tds_rate,
	status,
	created_at,
	updated_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountNumber": account.AccountNumber,
		"customerId":    account.CustomerID,
		"productCode":   account.ProductCode,
	})

	const query = `
INSERT INTO fd_accounts (
	account_number,
	iban,
	customer_id,
	product_code,
	branch_code,
	principal_amount,
	interest_rate,
	custom_interest_rate,
	term_months,
	maturity_amount,
	effective_date,
	maturity_date,
	interest_method,
	compounding_frequency,
	maturity_instruction,
	transfer_account,
	tds_applicable,
	tds_rate,
	status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING id, created_at, updated_at`

	var customRate decimal.NullDecimal
	if account.CustomInterestRate != nil {
		customRate = decimal.NullDecimal{Decimal: *account.CustomInterestRate, Valid: true}
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		nullableString(account.IBAN),
		account.CustomerID,
		account.ProductCode,
		account.BranchCode,
		account.PrincipalAmount,
		account.InterestRate,
		customRate,
		account.TermMonths,
		account.MaturityAmount,
		account.EffectiveDate,
		account.MaturityDate,
		account.InterestMethod,
		nullableEmpty(string(account.CompoundingFrequency)),
		account.MaturityInstruction,
		nullableString(account.TransferAccount),
		account.TDSApplicable,
		account.TDSRate,
		account.Status,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("create fd account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM fd_accounts WHERE account_number = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("get fd account %s: %w", accountNumber, err)
	}
	return account, nil
}

func (r *AccountRepository) ListActive(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM fd_accounts WHERE status = $1 ORDER BY account_number`

	return r.list(ctx, query, domain.AccountStatusActive)
}

func (r *AccountRepository) ListMatured(ctx context.Context, asOf time.Time) ([]domain.Account, error) {
	query := `SELECT` + accountColumns + ` FROM fd_accounts WHERE status = $1 AND maturity_date <= $2 ORDER BY account_number`

	return r.list(ctx, query, domain.AccountStatusActive, asOf)
}

func (r *AccountRepository) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fd accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fd account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fd account rows: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) UpdatePrincipal(ctx context.Context, accountID string, principal decimal.Decimal) error {
	const query = `UPDATE fd_accounts SET principal_amount = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, accountID, principal)
	if err != nil {
		return fmt.Errorf("update fd account principal: %w", err)
	}
	return requireRow(result, domain.ErrAccountNotFound)
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, closureDate *time.Time) error {
	const query = `UPDATE fd_accounts SET status = $2, closure_date = $3, updated_at = NOW() WHERE id = $1`

	var closure sql.NullTime
	if closureDate != nil {
		closure = sql.NullTime{Time: *closureDate, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, accountID, status, closure)
	if err != nil {
		return fmt.Errorf("update fd account status: %w", err)
	}
	return requireRow(result, domain.ErrAccountNotFound)
}

func (r *AccountRepository) Renew(ctx context.Context, accountID string, principal, maturityAmount decimal.Decimal, effectiveDate, maturityDate time.Time) error {
	const query = `
UPDATE fd_accounts SET
	principal_amount = $2,
	maturity_amount = $3,
	effective_date = $4,
	maturity_date = $5,
	status = $6,
	closure_date = NULL,
	updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, accountID, principal, maturityAmount, effectiveDate, maturityDate, domain.AccountStatusActive)
	if err != nil {
		return fmt.Errorf("renew fd account: %w", err)
	}
	return requireRow(result, domain.ErrAccountNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		account     domain.Account
		iban        sql.NullString
		customRate  decimal.NullDecimal
		closureDate sql.NullTime
		frequency   sql.NullString
		transfer    sql.NullString
	)

	if err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&iban,
		&account.CustomerID,
		&account.ProductCode,
		&account.BranchCode,
		&account.PrincipalAmount,
		&account.InterestRate,
		&customRate,
		&account.TermMonths,
		&account.MaturityAmount,
		&account.EffectiveDate,
		&account.MaturityDate,
		&closureDate,
		&account.InterestMethod,
		&frequency,
		&account.MaturityInstruction,
		&transfer,
		&account.TDSApplicable,
		&account.TDSRate,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	if iban.Valid {
		account.IBAN = &iban.String
	}
	if customRate.Valid {
		account.CustomInterestRate = &customRate.Decimal
	}
	if closureDate.Valid {
		account.ClosureDate = &closureDate.Time
	}
	if frequency.Valid {
		account.CompoundingFrequency = domain.CompoundingFrequency(frequency.String)
	}
	if transfer.Valid {
		account.TransferAccount = &transfer.String
	}

	return account, nil
}

func requireRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullableEmpty(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
