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

// AccrualService posts one day of simple interest to every active
// account. The run is idempotent per calendar day: rerunning the same
// batch date skips accounts that already carry that day's accrual
// marker.
type AccrualService struct {
	accountRepo repo_interfaces.AccountRepository
	txnRepo     repo_interfaces.TransactionRepository
	balanceRepo repo_interfaces.BalanceSnapshotRepository
	interest    *InterestService
	publisher   events.Publisher
	batchClock  clock.Clock
	workers     int
}

func NewAccrualService(
	accountRepo repo_interfaces.AccountRepository,
	txnRepo repo_interfaces.TransactionRepository,
	balanceRepo repo_interfaces.BalanceSnapshotRepository,
	interest *InterestService,
	publisher events.Publisher,
	batchClock clock.Clock,
	workers int,
) *AccrualService {
	return &AccrualService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		balanceRepo: balanceRepo,
		interest:    interest,
		publisher:   publisher,
		batchClock:  batchClock,
		workers:     workers,
	}
}

func (s *AccrualService) Run(ctx context.Context) (domain.RunReport, error) {
	runDate := s.batchClock.Today()
	logger.Info("accrual run started", logger.Fields{
		"runDate": runDate.Format(dateLayout),
	})

	accounts, err := s.accountRepo.ListActive(ctx)
	if err != nil {
		logger.Error("accrual run account enumeration failed", err, nil)
		return domain.RunReport{}, fmt.Errorf("list active accounts: %w", err)
	}

	report := forEachAccount(ctx, s.workers, accounts, func(ctx context.Context, account domain.Account) (batchOutcome, error) {
		outcome, err := s.accrueOne(ctx, account, runDate)
		if err != nil {
			logger.Error("accrual failed for account", err, logger.Fields{
				"accountNumber": account.AccountNumber,
				"runDate":       runDate.Format(dateLayout),
			})
		}
		return outcome, err
	})

	logger.Info("accrual run finished", logger.Fields{
		"runDate":   runDate.Format(dateLayout),
		"succeeded": report.Succeeded,
		"skipped":   report.Skipped,
		"errored":   report.Errored,
	})

	return report, nil
}

func (s *AccrualService) accrueOne(ctx context.Context, account domain.Account, runDate time.Time) (batchOutcome, error) {
	// No accrual before the contract starts or past its maturity date.
	if runDate.Before(clock.Truncate(account.EffectiveDate)) || runDate.After(clock.Truncate(account.MaturityDate)) {
		return outcomeSkipped, nil
	}

	periodKey := periodKeyFor(runDate)
	processed, err := s.txnRepo.HasEvent(ctx, account.ID, domain.EventKindAccrual, periodKey)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("accrual marker lookup: %w", err)
	}
	if processed {
		return outcomeSkipped, nil
	}

	interest, err := s.interest.DailyAccrual(account.PrincipalAmount, account.EffectiveRate())
	if err != nil {
		return outcomeSkipped, fmt.Errorf("daily accrual: %w", err)
	}
	if interest.IsZero() {
		return outcomeSkipped, nil
	}

	accrued, err := s.accruedBalance(ctx, account.ID)
	if err != nil {
		return outcomeSkipped, err
	}
	accruedAfter := accrued.Add(interest)

	transaction := domain.Transaction{
		AccountID:       account.ID,
		Reference:       newReference("ACR", runDate),
		Type:            domain.TransactionInterestAccrual,
		EventKind:       domain.EventKindAccrual,
		PeriodKey:       periodKey,
		Amount:          interest,
		TransactionDate: runDate,
		ValueDate:       runDate,
		Description:     fmt.Sprintf("Daily interest accrual at %s%%", account.EffectiveRate().String()),
		PrincipalAfter:  account.PrincipalAmount,
		InterestAfter:   accruedAfter,
		TotalAfter:      account.PrincipalAmount.Add(accruedAfter),
		PerformedBy:     "system",
	}
	if _, err := s.txnRepo.Create(ctx, transaction); err != nil {
		// A concurrent rerun posted this day first. Not an error.
		if errors.Is(err, domain.ErrDuplicateEvent) {
			return outcomeSkipped, nil
		}
		return outcomeSkipped, fmt.Errorf("record accrual transaction: %w", err)
	}

	snapshot := domain.BalanceSnapshot{
		AccountID:   account.ID,
		BalanceType: domain.BalanceInterestAccrued,
		Amount:      accruedAfter,
		AsOfDate:    runDate,
		Description: "Daily interest accrual",
	}
	if _, err := s.balanceRepo.Append(ctx, snapshot); err != nil {
		return outcomeSkipped, fmt.Errorf("append accrued balance snapshot: %w", err)
	}

	available := domain.BalanceSnapshot{
		AccountID:   account.ID,
		BalanceType: domain.BalanceAvailable,
		Amount:      account.PrincipalAmount.Add(accruedAfter),
		AsOfDate:    runDate,
		Description: "Balance after daily interest accrual",
	}
	if _, err := s.balanceRepo.Append(ctx, available); err != nil {
		return outcomeSkipped, fmt.Errorf("append available balance snapshot: %w", err)
	}

	s.publisher.Publish(events.KindInterestAccrued, map[string]string{
		"accountNumber": account.AccountNumber,
		"runDate":       periodKey,
		"amount":        interest.StringFixed(2),
	})

	return outcomeSucceeded, nil
}

// accruedBalance is the latest accrued-interest snapshot, zero when
// the account has never accrued.
func (s *AccrualService) accruedBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	snapshot, err := s.balanceRepo.Latest(ctx, accountID, domain.BalanceInterestAccrued)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("latest accrued balance: %w", err)
	}
	return snapshot.Amount, nil
}
