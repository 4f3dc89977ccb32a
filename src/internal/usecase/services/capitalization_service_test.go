package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/events"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

func (f *batchFixture) capitalizationService(runDate time.Time) *services.CapitalizationService {
	return services.NewCapitalizationService(
		f.accountRepo,
		f.txnRepo,
		f.balanceRepo,
		events.NewLogPublisher(),
		clock.FixedClock{Date: runDate},
		2,
	)
}

func compoundAccount(number string, principal, rate string, effective, maturity time.Time) domain.Account {
	account := activeAccount(number, principal, rate, effective, maturity)
	account.ProductCode = "FD-CUM"
	account.InterestMethod = domain.InterestMethodCompound
	account.CompoundingFrequency = domain.CompoundingQuarterly
	return account
}

// seedAccruals inserts one accrual transaction per day over [from, to]
// so capitalization has a period to sum.
func (f *batchFixture) seedAccruals(t *testing.T, accountID string, daily decimal.Decimal, from, to time.Time) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		total = total.Add(daily)
		_, err := f.txnRepo.Create(context.Background(), domain.Transaction{
			AccountID:       accountID,
			Reference:       fmt.Sprintf("FDACR-%s-SEEDSEED", day.Format("20060102")),
			Type:            domain.TransactionInterestAccrual,
			EventKind:       domain.EventKindAccrual,
			PeriodKey:       day.Format("2006-01-02"),
			Amount:          daily,
			TransactionDate: day,
			ValueDate:       day,
			PerformedBy:     "system",
		})
		require.NoError(t, err)
	}
	return total
}

func TestCapitalizationFoldsPeriodAccrualsIntoPrincipal(t *testing.T) {
	f := newBatchFixture()
	effective := date(2026, time.January, 15)
	boundary := date(2026, time.April, 15)
	account := f.addAccount(t, compoundAccount("0021000001", "100000", "7.3",
		effective, effective.AddDate(0, 12, 0)))

	daily := decimal.RequireFromString("20.00")
	total := f.seedAccruals(t, account.ID, daily, effective.AddDate(0, 0, 1), boundary)

	report, err := f.capitalizationService(boundary).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Succeeded: 1}, report)

	updated, err := f.accountRepo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, decimal.RequireFromString("100000").Add(total).StringFixed(2), updated.PrincipalAmount.StringFixed(2))

	// Accrued interest is reset; principal and available snapshots
	// reflect the fold.
	assert.Equal(t, "0.00", f.latestBalance(t, account.ID, domain.BalanceInterestAccrued).StringFixed(2))
	assert.Equal(t, updated.PrincipalAmount.StringFixed(2), f.latestBalance(t, account.ID, domain.BalancePrincipal).StringFixed(2))
	assert.Equal(t, updated.PrincipalAmount.StringFixed(2), f.latestBalance(t, account.ID, domain.BalanceAvailable).StringFixed(2))
}

func TestCapitalizationRerunIsIdempotent(t *testing.T) {
	f := newBatchFixture()
	effective := date(2026, time.January, 15)
	boundary := date(2026, time.April, 15)
	account := f.addAccount(t, compoundAccount("0021000001", "100000", "7.3",
		effective, effective.AddDate(0, 12, 0)))
	f.seedAccruals(t, account.ID, decimal.RequireFromString("20.00"), effective.AddDate(0, 0, 1), boundary)

	svc := f.capitalizationService(boundary)
	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	before, err := f.accountRepo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 1}, report)

	after, err := f.accountRepo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, after.PrincipalAmount.Equal(before.PrincipalAmount), "rerun must not fold interest twice")
}

func TestCapitalizationSkipsBeforeFirstBoundary(t *testing.T) {
	f := newBatchFixture()
	effective := date(2026, time.January, 15)
	account := f.addAccount(t, compoundAccount("0021000001", "100000", "7.3",
		effective, effective.AddDate(0, 12, 0)))
	f.seedAccruals(t, account.ID, decimal.RequireFromString("20.00"),
		effective.AddDate(0, 0, 1), date(2026, time.April, 14))

	report, err := f.capitalizationService(date(2026, time.April, 14)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 1}, report)

	updated, err := f.accountRepo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "100000.00", updated.PrincipalAmount.StringFixed(2))
}

func TestCapitalizationCatchesUpMissedBoundary(t *testing.T) {
	f := newBatchFixture()
	effective := date(2026, time.January, 15)
	boundary := date(2026, time.April, 15)
	account := f.addAccount(t, compoundAccount("0021000001", "100000", "7.3",
		effective, effective.AddDate(0, 12, 0)))

	daily := decimal.RequireFromString("20.00")
	periodTotal := f.seedAccruals(t, account.ID, daily, effective.AddDate(0, 0, 1), boundary)
	// One accrual past the boundary; it belongs to the next period and
	// must not be folded by the catch-up run.
	f.seedAccruals(t, account.ID, daily, boundary.AddDate(0, 0, 1), boundary.AddDate(0, 0, 1))

	// The batch missed the anniversary and runs a day late.
	report, err := f.capitalizationService(date(2026, time.April, 16)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Succeeded: 1}, report)

	updated, err := f.accountRepo.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, decimal.RequireFromString("100000").Add(periodTotal).StringFixed(2), updated.PrincipalAmount.StringFixed(2))

	// The boundary is settled; a later run does not fold it again.
	report, err = f.capitalizationService(date(2026, time.April, 17)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 1}, report)
}

func TestCapitalizationSkipsSimpleAccounts(t *testing.T) {
	f := newBatchFixture()
	effective := date(2026, time.January, 15)
	f.addAccount(t, activeAccount("0011000001", "100000", "6.5",
		effective, effective.AddDate(0, 12, 0)))

	report, err := f.capitalizationService(date(2026, time.April, 15)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 1}, report)
}

func TestCapitalizationMonthEndAnniversaryNormalization(t *testing.T) {
	f := newBatchFixture()
	// Jan 31 plus three months normalizes to May 1; Apr 30 is not a
	// boundary for this account, May 1 is.
	effective := date(2026, time.January, 31)
	account := f.addAccount(t, compoundAccount("0021000001", "100000", "7.3",
		effective, effective.AddDate(0, 12, 0)))
	f.seedAccruals(t, account.ID, decimal.RequireFromString("20.00"),
		effective.AddDate(0, 0, 1), date(2026, time.May, 1))

	report, err := f.capitalizationService(date(2026, time.April, 30)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 1}, report)

	report, err = f.capitalizationService(date(2026, time.May, 1)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Succeeded: 1}, report)
}

func TestCapitalizationSkipsWhenNothingAccrued(t *testing.T) {
	f := newBatchFixture()
	effective := date(2026, time.January, 15)
	f.addAccount(t, compoundAccount("0021000001", "100000", "7.3",
		effective, effective.AddDate(0, 12, 0)))

	report, err := f.capitalizationService(date(2026, time.April, 15)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunReport{Skipped: 1}, report)
}
