package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/events"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

// CapitalizationService folds accrued interest into principal for
// compound accounts once their compounding anniversary has been
// reached. A boundary missed while batches were down is caught up on
// the next run. Daily accruals after a capitalization run on the
// larger principal, which is how compounding is realised.
type CapitalizationService struct {
	accountRepo repo_interfaces.AccountRepository
	txnRepo     repo_interfaces.TransactionRepository
	balanceRepo repo_interfaces.BalanceSnapshotRepository
	publisher   events.Publisher
	batchClock  clock.Clock
	workers     int
}

func NewCapitalizationService(
	accountRepo repo_interfaces.AccountRepository,
	txnRepo repo_interfaces.TransactionRepository,
	balanceRepo repo_interfaces.BalanceSnapshotRepository,
	publisher events.Publisher,
	batchClock clock.Clock,
	workers int,
) *CapitalizationService {
	return &CapitalizationService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		balanceRepo: balanceRepo,
		publisher:   publisher,
		batchClock:  batchClock,
		workers:     workers,
	}
}

func (s *CapitalizationService) Run(ctx context.Context) (domain.RunReport, error) {
	runDate := s.batchClock.Today()
	logger.Info("capitalization run started", logger.Fields{
		"runDate": runDate.Format(dateLayout),
	})

	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		logger.Error("capitalization run account enumeration failed", err, nil)
		return domain.RunReport{}, fmt.Errorf("list active accounts: %w", err)
	}

	report := forEachAccount(ctx, s.workers, accounts, func(ctx context.Context, account domain.Account) (batchOutcome, error) {
		outcome, err := s.capitalizeOne(ctx, account, runDate)
		if err != nil {
			logger.Error("capitalization failed for account", err, logger.Fields{
				"accountNumber": account.AccountNumber,
				"runDate":       runDate.Format(dateLayout),
			})
		}
		return outcome, err
	})

	logger.Info("capitalization run finished", logger.Fields{
		"runDate":   runDate.Format(dateLayout),
		"succeeded": report.Succeeded,
		"skipped":   report.Skipped,
		"errored":   report.Errored,
	})

	return report, nil
}

func (s *CapitalizationService) capitalizeOne(ctx context.Context, account domain.Account, runDate time.Time) (batchOutcome, error) {
	if account.InterestMethod != domain.InterestMethodCompound {
		return outcomeSkipped, nil
	}

	monthsPerPeriod := 12 / account.CompoundingFrequency.PeriodsPerYear()
	boundary, reached := latestCompoundingBoundary(account.EffectiveDate, runDate, monthsPerPeriod)
	if !reached {
		return outcomeSkipped, nil
	}

	// The event is keyed to the boundary the run settles, not the batch
	// date, so a catch-up run and an on-time run collapse to one marker.
	periodKey := periodKeyFor(boundary)
	processed, err := s.txnRepo.HasEvent(ctx, account.ID, domain.EventKindCapitalization, periodKey)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("capitalization marker lookup: %w", err)
	}
	if processed {
		return outcomeSkipped, nil
	}

	// Accruals value-dated the previous boundary belong to the period
	// that boundary closed, so the window opens one day after it.
	periodStart := boundary.AddDate(0, -monthsPerPeriod, 0)
	windowFrom := periodStart.AddDate(0, 0, 1)

	alreadyCovered, err := s.txnRepo.HasEventInRange(ctx, account.ID, domain.EventKindCapitalization, windowFrom, boundary)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("capitalization window lookup: %w", err)
	}
	if alreadyCovered {
		return outcomeSkipped, nil
	}

	accrued, err := s.txnRepo.SumAmountByKind(ctx, account.ID, domain.EventKindAccrual, windowFrom, boundary)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("sum period accruals: %w", err)
	}
	if accrued.LessThanOrEqual(decimal.Zero) {
		return outcomeSkipped, nil
	}

	newPrincipal := account.PrincipalAmount.Add(accrued)
	if err := s.accountRepo.UpdatePrincipal(ctx, account.ID, newPrincipal); err != nil {
		return outcomeSkipped, fmt.Errorf("update principal: %w", err)
	}

	transaction := domain.Transaction{
		AccountID:       account.ID,
		Reference:       newReference("CAP", runDate),
		Type:            domain.TransactionInterestCapitalization,
		EventKind:       domain.EventKindCapitalization,
		PeriodKey:       periodKey,
		Amount:          accrued,
		TransactionDate: runDate,
		ValueDate:       boundary,
		Description:     fmt.Sprintf("Interest capitalized for period ending %s", periodKey),
		PrincipalAfter:  newPrincipal,
		InterestAfter:   decimal.Zero,
		TotalAfter:      newPrincipal,
		PerformedBy:     "system",
	}
	if _, err := s.txnRepo.Create(ctx, transaction); err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			return outcomeSkipped, nil
		}
		return outcomeSkipped, fmt.Errorf("record capitalization transaction: %w", err)
	}

	principalSnapshot := domain.BalanceSnapshot{
		AccountID:   account.ID,
		BalanceType: domain.BalancePrincipal,
		Amount:      newPrincipal,
		AsOfDate:    runDate,
		Description: "Principal after interest capitalization",
	}
	if _, err := s.balanceRepo.Append(ctx, principalSnapshot); err != nil {
		return outcomeSkipped, fmt.Errorf("append principal snapshot: %w", err)
	}

	accruedSnapshot := domain.BalanceSnapshot{
		AccountID:   account.ID,
		BalanceType: domain.BalanceInterestAccrued,
		Amount:      decimal.Zero,
		AsOfDate:    runDate,
		Description: "Accrued interest moved to principal",
	}
	if _, err := s.balanceRepo.Append(ctx, accruedSnapshot); err != nil {
		return outcomeSkipped, fmt.Errorf("append accrued snapshot: %w", err)
	}

	availableSnapshot := domain.BalanceSnapshot{
		AccountID:   account.ID,
		BalanceType: domain.BalanceAvailable,
		Amount:      newPrincipal,
		AsOfDate:    runDate,
		Description: "Balance after interest capitalization",
	}
	if _, err := s.balanceRepo.Append(ctx, availableSnapshot); err != nil {
		return outcomeSkipped, fmt.Errorf("append available snapshot: %w", err)
	}

	s.publisher.Publish(events.KindInterestCapitalized, map[string]string{
		"accountNumber": account.AccountNumber,
		"runDate":       periodKey,
		"amount":        accrued.StringFixed(2),
		"newPrincipal":  newPrincipal.StringFixed(2),
	})

	return outcomeSucceeded, nil
}

// latestCompoundingBoundary returns the most recent compounding
// anniversary of the effective date on or before runDate. A run is
// allowed any day on or after a boundary, so a boundary missed while
// batches were down is settled by the next run instead of waiting a
// full extra period. AddDate normalizes month-end overflow, which is
// why anniversaries are walked rather than derived by modulo.
func latestCompoundingBoundary(effectiveDate, runDate time.Time, monthsPerPeriod int) (time.Time, bool) {
	start := clock.Truncate(effectiveDate)
	run := clock.Truncate(runDate)

	var boundary time.Time
	found := false
	for k := 1; ; k++ {
		candidate := start.AddDate(0, k*monthsPerPeriod, 0)
		if candidate.After(run) {
			break
		}
		boundary = candidate
		found = true
	}
	return boundary, found
}
