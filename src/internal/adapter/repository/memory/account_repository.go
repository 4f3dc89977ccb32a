package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

// AccountRepository is the in-memory ledger used by tests and local
// runs. Semantics mirror the postgres implementation.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	byNumber map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]domain.Account),
		byNumber: make(map[string]string),
	}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	r.accounts[account.ID] = account
	r.byNumber[account.AccountNumber] = account.ID

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[accountNumber]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return r.accounts[id], nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) ListActive(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0)
	for _, account := range r.accounts {
		if account.Status == domain.AccountStatusActive {
			out = append(out, account)
		}
	}
	sortAccounts(out)
	return out, nil
}

func (r *AccountRepository) ListMatured(_ context.Context, asOf time.Time) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := clock.Truncate(asOf)
	out := make([]domain.Account, 0)
	for _, account := range r.accounts {
		if account.Status == domain.AccountStatusActive && !clock.Truncate(account.MaturityDate).After(day) {
			out = append(out, account)
		}
	}
	sortAccounts(out)
	return out, nil
}

func (r *AccountRepository) UpdatePrincipal(_ context.Context, accountID string, principal decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.PrincipalAmount = principal
	account.UpdatedAt = time.Now().UTC()
	r.accounts[accountID] = account
	return nil
}

func (r *AccountRepository) UpdateStatus(_ context.Context, accountID string, status domain.AccountStatus, closureDate *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Status = status
	account.ClosureDate = closureDate
	account.UpdatedAt = time.Now().UTC()
	r.accounts[accountID] = account
	return nil
}

func (r *AccountRepository) Renew(_ context.Context, accountID string, principal, maturityAmount decimal.Decimal, effectiveDate, maturityDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.PrincipalAmount = principal
	account.MaturityAmount = maturityAmount
	account.EffectiveDate = effectiveDate
	account.MaturityDate = maturityDate
	account.Status = domain.AccountStatusActive
	account.ClosureDate = nil
	account.UpdatedAt = time.Now().UTC()
	r.accounts[accountID] = account
	return nil
}

func sortAccounts(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber < accounts[j].AccountNumber
	})
}
