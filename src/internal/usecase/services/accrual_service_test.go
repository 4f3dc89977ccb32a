package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/events"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

type batchFixture struct {
	accountRepo *memory.AccountRepository
	txnRepo     *memory.TransactionRepository
	balanceRepo *memory.BalanceSnapshotRepository
}

func newBatchFixture() *batchFixture {
	return &batchFixture{
		accountRepo: memory.NewAccountRepository(),
		txnRepo:     memory.NewTransactionRepository(),
		balanceRepo: memory.NewBalanceSnapshotRepository(),
	}
}

func (f *batchFixture) accrualService(runDate time.Time) *services.AccrualService {
	return services.NewAccrualService(
		f.accountRepo,
		f.txnRepo,
		f.balanceRepo,
		services.NewInterestService(),
		events.NewLogPublisher(),
		clock.FixedClock{Date: runDate},
		2,
	)
}

func (f *batchFixture) addAccount(t *testing.T, account domain.Account) domain.Account {
	t.Helper()
	created, err := f.accountRepo.Create(context.Background(), account)
	require.NoError(t, err)
	return created
}

func (f *batchFixture) latestBalance(t *testing.T, accountID string, balanceType domain.BalanceType) decimal.Decimal {
	t.Helper()
	snapshot, err := f.balanceRepo.Latest(context.Background(), accountID, balanceType)
	require.NoError(t, err)
	return snapshot.Amount
}

func activeAccount(number string, principal, rate string, effective, maturity time.Time) domain.Account {
	return domain.Account{
		AccountNumber:       number,
		CustomerID:          "CUST-1001",
		ProductCode:         "FD-REG",
		BranchCode:          "001",
		PrincipalAmount:     decimal.RequireFromString(principal),
		InterestRate:        decimal.RequireFromString(rate),
		TermMonths:          12,
		EffectiveDate:       effective,
		MaturityDate:        maturity,
		InterestMethod:      domain.InterestMethodSimple,
		MaturityInstruction: domain.MaturityHold,
		Status:              domain.AccountStatusActive,
	}
}

func TestAccrualPostsOneDayOfInterest(t *testing.T) {
	f := newBatchFixture()
	runDate := date(2026, time.March, 10)
	account := f.addAccount(t, activeAccount("0011000001", "100000", "7.3",
		date(2026, time.January, 1), date(2027, time.January, 1)))

	report, err := f.accrualService(runDate).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Succeeded: 1}, report)

	// 100000 at 7.3% is exactly 20.00 per day.
	assert.Equal(t, "20.00", f.latestBalance(t, account.ID, domain.BalanceInterestAccrued).StringFixed(2))
	assert.Equal(t, "100020.00", f.latestBalance(t, account.ID, domain.BalanceAvailable).StringFixed(2))

	transactions, err := f.txnRepo.ListByAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, domain.TransactionInterestAccrual, transactions[0].Type)
	assert.Equal(t, "2026-03-10", transactions[0].PeriodKey)
	assert.Equal(t, "20.00", transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "100020.00", transactions[0].TotalAfter.StringFixed(2))
}

func TestAccrualRerunIsIdempotent(t *testing.T) {
	f := newBatchFixture()
	runDate := date(2026, time.March, 10)
	account := f.addAccount(t, activeAccount("0011000001", "100000", "7.3",
		date(2026, time.January, 1), date(2027, time.January, 1)))

	svc := f.accrualService(runDate)
	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 1}, report)

	transactions, err := f.txnRepo.ListByAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, transactions, 1, "rerun must not post a second accrual for the same day")
}

func TestAccrualAccumulatesAcrossDays(t *testing.T) {
	f := newBatchFixture()
	account := f.addAccount(t, activeAccount("0011000001", "100000", "7.3",
		date(2026, time.January, 1), date(2027, time.January, 1)))

	for day := 10; day <= 12; day++ {
		_, err := f.accrualService(date(2026, time.March, day)).Run(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, "60.00", f.latestBalance(t, account.ID, domain.BalanceInterestAccrued).StringFixed(2))
	assert.Equal(t, "100060.00", f.latestBalance(t, account.ID, domain.BalanceAvailable).StringFixed(2))
}

func TestAccrualSkipsAccountsOutsideTheirTerm(t *testing.T) {
	f := newBatchFixture()
	runDate := date(2026, time.March, 10)

	f.addAccount(t, activeAccount("0011000001", "50000", "6.5",
		date(2026, time.April, 1), date(2027, time.April, 1)))
	f.addAccount(t, activeAccount("0011000002", "50000", "6.5",
		date(2025, time.January, 1), date(2026, time.January, 1)))

	report, err := f.accrualService(runDate).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 2}, report)
}

func TestAccrualUsesCustomRateOverride(t *testing.T) {
	f := newBatchFixture()
	runDate := date(2026, time.March, 10)

	account := activeAccount("0011000001", "100000", "6.5",
		date(2026, time.January, 1), date(2027, time.January, 1))
	custom := decimal.RequireFromString("7.3")
	account.CustomInterestRate = &custom
	created := f.addAccount(t, account)

	_, err := f.accrualService(runDate).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "20.00", f.latestBalance(t, created.ID, domain.BalanceInterestAccrued).StringFixed(2))
}
