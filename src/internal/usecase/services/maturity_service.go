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

// MaturityService settles deposits whose maturity date has arrived,
// including any missed while batches were down. Each account is
// disposed of exactly once, according to its stored instruction.
type MaturityService struct {
	accountRepo repo_interfaces.AccountRepository
	txnRepo     repo_interfaces.TransactionRepository
	balanceRepo repo_interfaces.BalanceSnapshotRepository
	interest    *InterestService
	publisher   events.Publisher
	batchClock  clock.Clock
	workers     int
}

func NewMaturityService(
	accountRepo repo_interfaces.AccountRepository,
	txnRepo repo_interfaces.TransactionRepository,
	balanceRepo repo_interfaces.BalanceSnapshotRepository,
	interest *InterestService,
	publisher events.Publisher,
	batchClock clock.Clock,
	workers int,
) *MaturityService {
	return &MaturityService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		balanceRepo: balanceRepo,
		interest:    interest,
		publisher:   publisher,
		batchClock:  batchClock,
		workers:     workers,
	}
}

func (s *MaturityService) Run(ctx context.Context) (domain.RunReport, error) {
	runDate := s.batchClock.Today()
	logger.Info("maturity run started", logger.Fields{
		"runDate": runDate.Format(dateLayout),
	})

	accounts, err := s.accountRepo.ListMatured(ctx, runDate)
	if err != nil {
		logger.Error("maturity run account enumeration failed", err, nil)
		return domain.RunReport{}, fmt.Errorf("list matured accounts: %w", err)
	}

	report := forEachAccount(ctx, s.workers, accounts, func(ctx context.Context, account domain.Account) (batchOutcome, error) {
		outcome, err := s.matureOne(ctx, account, runDate)
		if err != nil {
			logger.Error("maturity processing failed for account", err, logger.Fields{
				"accountNumber": account.AccountNumber,
				"instruction":   string(account.MaturityInstruction),
				"runDate":       runDate.Format(dateLayout),
			})
		}
		return outcome, err
	})

	logger.Info("maturity run finished", logger.Fields{
		"runDate":   runDate.Format(dateLayout),
		"succeeded": report.Succeeded,
		"skipped":   report.Skipped,
		"errored":   report.Errored,
	})

	return report, nil
}

func (s *MaturityService) matureOne(ctx context.Context, account domain.Account, runDate time.Time) (batchOutcome, error) {
	// Disposition happens once per contract term. Any prior maturity
	// event, even from a crashed run, blocks reprocessing.
	disposed, err := s.txnRepo.HasAnyEvent(ctx, account.ID, domain.EventKindMaturity)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("maturity marker lookup: %w", err)
	}
	if disposed {
		return outcomeSkipped, nil
	}

	accrued, err := s.accruedBalance(ctx, account.ID)
	if err != nil {
		return outcomeSkipped, err
	}

	// Disposition moves the gross accrued interest. Withholding is a
	// statement-time concern, not a ledger movement here.
	totalValue := account.PrincipalAmount.Add(accrued)
	maturityDate := clock.Truncate(account.MaturityDate)

	switch account.MaturityInstruction {
	case domain.MaturityHold:
		err = s.hold(ctx, account)
	case domain.MaturityCloseAndPayout:
		err = s.closeAndPayout(ctx, account, totalValue, accrued, maturityDate, runDate)
	case domain.MaturityRenewPrincipalOnly:
		err = s.renew(ctx, account, account.PrincipalAmount, accrued, maturityDate, runDate)
	case domain.MaturityRenewWithInterest:
		err = s.renew(ctx, account, totalValue, decimal.Zero, maturityDate, runDate)
	case domain.MaturityTransferToSavings, domain.MaturityTransferToCurrent:
		err = s.transferOut(ctx, account, totalValue, accrued, maturityDate, runDate)
	default:
		return outcomeSkipped, fmt.Errorf("account %s has unknown maturity instruction %q", account.AccountNumber, account.MaturityInstruction)
	}
	if err != nil {
		return outcomeSkipped, err
	}

	s.publisher.Publish(events.KindMaturityProcessed, map[string]string{
		"accountNumber": account.AccountNumber,
		"instruction":   string(account.MaturityInstruction),
		"maturityDate":  maturityDate.Format(dateLayout),
		"totalValue":    totalValue.StringFixed(2),
	})

	return outcomeSucceeded, nil
}

// hold marks the deposit matured with funds left in place awaiting a
// customer instruction. Balances and the ledger stay untouched; the
// status change alone removes the account from future runs.
func (s *MaturityService) hold(ctx context.Context, account domain.Account) error {
	if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountStatusMatured, nil); err != nil {
		return fmt.Errorf("mark account matured: %w", err)
	}
	return nil
}

func (s *MaturityService) closeAndPayout(
	ctx context.Context,
	account domain.Account,
	totalValue, interest decimal.Decimal,
	maturityDate, runDate time.Time,
) error {
	transaction := domain.Transaction{
		AccountID:       account.ID,
		Reference:       newReference("MAT", runDate),
		Type:            domain.TransactionMaturityPayout,
		EventKind:       domain.EventKindMaturity,
		PeriodKey:       periodKeyFor(maturityDate),
		Amount:          totalValue,
		TransactionDate: runDate,
		ValueDate:       maturityDate,
		Description:     fmt.Sprintf("Maturity payout including interest %s", interest.StringFixed(2)),
		PrincipalAfter:  decimal.Zero,
		InterestAfter:   decimal.Zero,
		TotalAfter:      decimal.Zero,
		PerformedBy:     "system",
	}
	if _, err := s.txnRepo.Create(ctx, transaction); err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			return nil
		}
		return fmt.Errorf("record maturity payout: %w", err)
	}

	settledDate := runDate
	if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountStatusMatured, &settledDate); err != nil {
		return fmt.Errorf("settle account: %w", err)
	}

	return s.zeroOutBalances(ctx, account.ID, runDate, "Account settled at maturity")
}

// renew rolls the deposit into a fresh term of the same length at the
// same contract rate. Interest not rolled into the new principal is
// paid out alongside.
func (s *MaturityService) renew(
	ctx context.Context,
	account domain.Account,
	newPrincipal, paidOutInterest decimal.Decimal,
	maturityDate, runDate time.Time,
) error {
	// Renewal terms run from the original maturity date, not the batch
	// date, so a catch-up run does not stretch the term.
	newEffective := maturityDate
	newMaturity := newEffective.AddDate(0, account.TermMonths, 0)

	projected, err := s.interest.MaturityAmount(
		newPrincipal,
		account.EffectiveRate(),
		account.TermMonths,
		account.InterestMethod,
		account.CompoundingFrequency,
	)
	if err != nil {
		return fmt.Errorf("project renewed maturity amount: %w", err)
	}

	transaction := domain.Transaction{
		AccountID:       account.ID,
		Reference:       newReference("MAT", runDate),
		Type:            domain.TransactionMaturityRenewal,
		EventKind:       domain.EventKindMaturity,
		PeriodKey:       periodKeyFor(maturityDate),
		Amount:          newPrincipal,
		TransactionDate: runDate,
		ValueDate:       maturityDate,
		Description:     fmt.Sprintf("Renewed for %d months to %s", account.TermMonths, newMaturity.Format(dateLayout)),
		PrincipalAfter:  newPrincipal,
		InterestAfter:   decimal.Zero,
		TotalAfter:      newPrincipal,
		PerformedBy:     "system",
	}
	if _, err := s.txnRepo.Create(ctx, transaction); err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			return nil
		}
		return fmt.Errorf("record maturity renewal: %w", err)
	}

	if paidOutInterest.GreaterThan(decimal.Zero) {
		payout := domain.Transaction{
			AccountID:       account.ID,
			Reference:       newReference("MAT", runDate),
			Type:            domain.TransactionMaturityPayout,
			EventKind:       domain.EventKindMaturity,
			PeriodKey:       periodKeyFor(maturityDate) + "/interest",
			Amount:          paidOutInterest,
			TransactionDate: runDate,
			ValueDate:       maturityDate,
			Description:     "Interest paid out on renewal",
			PrincipalAfter:  newPrincipal,
			InterestAfter:   decimal.Zero,
			TotalAfter:      newPrincipal,
			PerformedBy:     "system",
		}
		if _, err := s.txnRepo.Create(ctx, payout); err != nil && !errors.Is(err, domain.ErrDuplicateEvent) {
			return fmt.Errorf("record renewal interest payout: %w", err)
		}
	}

	if err := s.accountRepo.Renew(ctx, account.ID, newPrincipal, projected, newEffective, newMaturity); err != nil {
		return fmt.Errorf("renew account: %w", err)
	}

	snapshots := []domain.BalanceSnapshot{
		{
			AccountID:   account.ID,
			BalanceType: domain.BalancePrincipal,
			Amount:      newPrincipal,
			AsOfDate:    runDate,
			Description: "Principal for renewed term",
		},
		{
			AccountID:   account.ID,
			BalanceType: domain.BalanceInterestAccrued,
			Amount:      decimal.Zero,
			AsOfDate:    runDate,
			Description: "Accrued interest settled at renewal",
		},
	}
	for _, snapshot := range snapshots {
		if _, err := s.balanceRepo.Append(ctx, snapshot); err != nil {
			return fmt.Errorf("append renewal snapshot: %w", err)
		}
	}
	return nil
}

func (s *MaturityService) transferOut(
	ctx context.Context,
	account domain.Account,
	totalValue, interest decimal.Decimal,
	maturityDate, runDate time.Time,
) error {
	destination := ""
	if account.TransferAccount != nil {
		destination = *account.TransferAccount
	}
	if destination == "" {
		return fmt.Errorf("account %s has a transfer instruction but no transfer account", account.AccountNumber)
	}

	kind := "savings"
	if account.MaturityInstruction == domain.MaturityTransferToCurrent {
		kind = "current"
	}

	transaction := domain.Transaction{
		AccountID:       account.ID,
		Reference:       newReference("MAT", runDate),
		Type:            domain.TransactionMaturityTransfer,
		EventKind:       domain.EventKindMaturity,
		PeriodKey:       periodKeyFor(maturityDate),
		Amount:          totalValue,
		TransactionDate: runDate,
		ValueDate:       maturityDate,
		Description:     fmt.Sprintf("Maturity proceeds transferred to %s account, including interest %s", kind, interest.StringFixed(2)),
		PrincipalAfter:  decimal.Zero,
		InterestAfter:   decimal.Zero,
		TotalAfter:      decimal.Zero,
		PerformedBy:     "system",
	}
	if _, err := s.txnRepo.Create(ctx, transaction); err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			return nil
		}
		return fmt.Errorf("record maturity transfer: %w", err)
	}

	settledDate := runDate
	if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountStatusMatured, &settledDate); err != nil {
		return fmt.Errorf("settle account after transfer: %w", err)
	}

	return s.zeroOutBalances(ctx, account.ID, runDate, "Account settled at maturity")
}

func (s *MaturityService) zeroOutBalances(ctx context.Context, accountID string, runDate time.Time, description string) error {
	for _, balanceType := range []domain.BalanceType{domain.BalancePrincipal, domain.BalanceInterestAccrued, domain.BalanceAvailable} {
		snapshot := domain.BalanceSnapshot{
			AccountID:   accountID,
			BalanceType: balanceType,
			Amount:      decimal.Zero,
			AsOfDate:    runDate,
			Description: description,
		}
		if _, err := s.balanceRepo.Append(ctx, snapshot); err != nil {
			return fmt.Errorf("append settlement snapshot: %w", err)
		}
	}
	return nil
}

func (s *MaturityService) accruedBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	snapshot, err := s.balanceRepo.Latest(ctx, accountID, domain.BalanceInterestAccrued)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("latest accrued balance: %w", err)
	}
	return snapshot.Amount, nil
}
