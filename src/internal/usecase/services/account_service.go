package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/events"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/service_interfaces"
)

// AccountService owns the FD account lifecycle outside of batch runs:
// opening, reads and premature withdrawal inquiries.
type AccountService struct {
	accountRepo    repo_interfaces.AccountRepository
	txnRepo        repo_interfaces.TransactionRepository
	balanceRepo    repo_interfaces.BalanceSnapshotRepository
	branchRepo     repo_interfaces.BranchRepository
	customerClient service_interfaces.CustomerClient
	productCatalog service_interfaces.ProductCatalog
	generator      AccountNumberGenerator
	interest       *InterestService
	publisher      events.Publisher
	batchClock     clock.Clock
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	txnRepo repo_interfaces.TransactionRepository,
	balanceRepo repo_interfaces.BalanceSnapshotRepository,
	branchRepo repo_interfaces.BranchRepository,
	customerClient service_interfaces.CustomerClient,
	productCatalog service_interfaces.ProductCatalog,
	generator AccountNumberGenerator,
	interest *InterestService,
	publisher events.Publisher,
	batchClock clock.Clock,
) *AccountService {
	return &AccountService{
		accountRepo:    accountRepo,
		txnRepo:        txnRepo,
		balanceRepo:    balanceRepo,
		branchRepo:     branchRepo,
		customerClient: customerClient,
		productCatalog: productCatalog,
		generator:      generator,
		interest:       interest,
		publisher:      publisher,
		batchClock:     batchClock,
	}
}

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	customer, err := s.customerClient.FetchCustomer(ctx, customerID)
	if err != nil {
		logger.Error("account service customer lookup failed", err, logger.Fields{
			"customerId": customerID,
		})
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to verify customer right now"), err
	}
	if !customer.Active {
		err := fmt.Errorf("customer %s is not active", customerID)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	product, err := s.productCatalog.FetchProduct(ctx, req.ProductCode)
	if err != nil {
		logger.Error("account service product lookup failed", err, logger.Fields{
			"productCode": req.ProductCode,
		})
		if errors.Is(err, domain.ErrProductNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Product not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to fetch product right now"), err
	}

	if req.TermMonths < product.MinTermMonths || req.TermMonths > product.MaxTermMonths {
		err := fmt.Errorf("termMonths must be between %d and %d for product %s", product.MinTermMonths, product.MaxTermMonths, product.Code)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	instruction := domain.MaturityInstruction(strings.ToUpper(strings.TrimSpace(req.MaturityInstruction)))
	if !product.AllowsInstruction(instruction) {
		err := fmt.Errorf("maturityInstruction %s is not permitted for product %s", instruction, product.Code)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	rate := product.DefaultRate
	var customRate *decimal.Decimal
	if raw := strings.TrimSpace(req.InterestRate); raw != "" {
		parsed, _ := decimal.NewFromString(raw)
		if parsed.LessThan(product.MinRate) || parsed.GreaterThan(product.MaxRate) {
			err := fmt.Errorf("interestRate must be between %s and %s for product %s", product.MinRate.String(), product.MaxRate.String(), product.Code)
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
		customRate = &parsed
	}

	frequency := product.DefaultFrequency
	if raw := strings.ToUpper(strings.TrimSpace(req.CompoundingFrequency)); raw != "" {
		if product.InterestMethod != domain.InterestMethodCompound {
			err := fmt.Errorf("compoundingFrequency is only valid for compound products")
			return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
		}
		frequency = domain.CompoundingFrequency(raw)
	}

	effectiveDate := s.batchClock.Today()
	if raw := strings.TrimSpace(req.EffectiveDate); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse]("validation failed", "effectiveDate must be formatted YYYY-MM-DD"), err
		}
		effectiveDate = clock.Truncate(parsed)
	}
	maturityDate := effectiveDate.AddDate(0, req.TermMonths, 0)

	principal, _ := decimal.NewFromString(strings.TrimSpace(req.Principal))
	principal = principal.Round(2)

	effectiveRate := rate
	if customRate != nil {
		effectiveRate = *customRate
	}
	maturityAmount, err := s.interest.MaturityAmount(principal, effectiveRate, req.TermMonths, product.InterestMethod, frequency)
	if err != nil {
		logger.Error("account service maturity projection failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", err.Error()), err
	}

	generated, err := s.generator.Generate(ctx, req.BranchCode)
	if err != nil {
		logger.Error("account service identifier generation failed", err, logger.Fields{
			"branchCode": req.BranchCode,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to allocate an account number right now"), err
	}

	account := domain.Account{
		AccountNumber:        generated.AccountNumber,
		CustomerID:           customerID,
		ProductCode:          product.Code,
		BranchCode:           generated.BranchCode,
		PrincipalAmount:      principal,
		InterestRate:         rate,
		CustomInterestRate:   customRate,
		TermMonths:           req.TermMonths,
		MaturityAmount:       maturityAmount,
		EffectiveDate:        effectiveDate,
		MaturityDate:         maturityDate,
		InterestMethod:       product.InterestMethod,
		CompoundingFrequency: frequency,
		MaturityInstruction:  instruction,
		TDSApplicable:        product.TDSApplicable,
		TDSRate:              product.TDSRate,
		Status:               domain.AccountStatusActive,
	}
	if generated.IBAN != "" {
		account.IBAN = &generated.IBAN
	}
	if transfer := strings.TrimSpace(req.TransferAccount); transfer != "" {
		account.TransferAccount = &transfer
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	opening := domain.Transaction{
		AccountID:       created.ID,
		Reference:       newReference("OPN", effectiveDate),
		Type:            domain.TransactionOpeningDeposit,
		EventKind:       domain.EventKindOpening,
		PeriodKey:       periodKeyFor(effectiveDate),
		Amount:          principal,
		TransactionDate: effectiveDate,
		ValueDate:       effectiveDate,
		Description:     fmt.Sprintf("Opening deposit for %d month term", created.TermMonths),
		PrincipalAfter:  principal,
		InterestAfter:   decimal.Zero,
		TotalAfter:      principal,
		PerformedBy:     "system",
	}
	if _, err := s.txnRepo.Create(ctx, opening); err != nil {
		logger.Error("account service opening transaction failed", err, logger.Fields{
			"accountNumber": created.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to record the opening deposit"), err
	}

	snapshots := []domain.BalanceSnapshot{
		{
			AccountID:   created.ID,
			BalanceType: domain.BalancePrincipal,
			Amount:      principal,
			AsOfDate:    effectiveDate,
			Description: "Opening principal",
		},
		{
			AccountID:   created.ID,
			BalanceType: domain.BalanceInterestAccrued,
			Amount:      decimal.Zero,
			AsOfDate:    effectiveDate,
			Description: "Opening accrued interest",
		},
		{
			AccountID:   created.ID,
			BalanceType: domain.BalanceAvailable,
			Amount:      principal,
			AsOfDate:    effectiveDate,
			Description: "Opening balance",
		},
	}
	for _, snapshot := range snapshots {
		if _, err := s.balanceRepo.Append(ctx, snapshot); err != nil {
			logger.Error("account service opening snapshot failed", err, logger.Fields{
				"accountNumber": created.AccountNumber,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to record opening balances"), err
		}
	}

	s.publisher.Publish(events.KindAccountOpened, map[string]string{
		"accountNumber": created.AccountNumber,
		"productCode":   created.ProductCode,
		"principal":     principal.StringFixed(2),
		"maturityDate":  maturityDate.Format(dateLayout),
	})

	response := toAccountResponse(created, decimal.Zero)

	logger.Info("account service open account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
		"productCode":   created.ProductCode,
	})

	return commons.SuccessResponse("account opened successfully", response), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	account, err := s.fetchAccount(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	accrued, err := s.accruedBalance(ctx, account.ID)
	if err != nil {
		logger.Error("account service accrued balance lookup failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", toAccountResponse(account, accrued)), nil
}

func (s *AccountService) GetStatement(ctx context.Context, accountNumber string) (commons.Response[models.AccountStatementResponse], error) {
	account, err := s.fetchAccount(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.AccountStatementResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountStatementResponse]("failed to get statement", "Unable to fetch statement right now"), err
	}

	transactions, err := s.txnRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		logger.Error("account service statement lookup failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountStatementResponse]("failed to get statement", "Unable to fetch statement right now"), err
	}

	accrued, err := s.accruedBalance(ctx, account.ID)
	if err != nil {
		return commons.ErrorResponse[models.AccountStatementResponse]("failed to get statement", "Unable to fetch statement right now"), err
	}

	response := models.AccountStatementResponse{
		Account:      toAccountResponse(account, accrued),
		Transactions: make([]models.TransactionResponse, 0, len(transactions)),
	}
	for _, txn := range transactions {
		response.Transactions = append(response.Transactions, models.TransactionResponse{
			ID:              txn.ID,
			Reference:       txn.Reference,
			Type:            string(txn.Type),
			Amount:          txn.Amount.StringFixed(2),
			TransactionDate: txn.TransactionDate.Format(dateLayout),
			ValueDate:       txn.ValueDate.Format(dateLayout),
			Description:     txn.Description,
			PrincipalAfter:  txn.PrincipalAfter.StringFixed(2),
			InterestAfter:   txn.InterestAfter.StringFixed(2),
			TotalAfter:      txn.TotalAfter.StringFixed(2),
			Reversed:        txn.Reversed,
		})
	}

	return commons.SuccessResponse("statement fetched successfully", response), nil
}

// PrematureWithdrawalInquiry quotes an indicative early-closure payout
// at today's date: simple interest for elapsed days at the contract
// rate less the product's penalty, floored at zero. It is a quote
// only; no balances move.
func (s *AccountService) PrematureWithdrawalInquiry(ctx context.Context, accountNumber string) (commons.Response[models.PrematureWithdrawalResponse], error) {
	account, err := s.fetchAccount(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.PrematureWithdrawalResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.PrematureWithdrawalResponse]("failed to quote withdrawal", "Unable to quote withdrawal right now"), err
	}

	if account.Status != domain.AccountStatusActive {
		err := fmt.Errorf("account %s is not active", accountNumber)
		return commons.ErrorResponse[models.PrematureWithdrawalResponse]("validation failed", err.Error()), err
	}

	product, err := s.productCatalog.FetchProduct(ctx, account.ProductCode)
	if err != nil {
		logger.Error("account service withdrawal product lookup failed", err, logger.Fields{
			"productCode": account.ProductCode,
		})
		return commons.ErrorResponse[models.PrematureWithdrawalResponse]("failed to quote withdrawal", "Unable to quote withdrawal right now"), err
	}

	asOf := s.batchClock.Today()
	daysElapsed := clock.DaysBetween(account.EffectiveDate, asOf)
	if daysElapsed < 0 {
		daysElapsed = 0
	}

	contractRate := account.EffectiveRate()
	penalizedRate := contractRate.Sub(product.PenaltyRate)
	if penalizedRate.LessThan(decimal.Zero) {
		penalizedRate = decimal.Zero
	}

	interestEarned := decimal.Zero
	if daysElapsed > 0 && penalizedRate.GreaterThan(decimal.Zero) {
		interestEarned, err = s.interest.SimpleInterestForDays(account.PrincipalAmount, penalizedRate, daysElapsed)
		if err != nil {
			return commons.ErrorResponse[models.PrematureWithdrawalResponse]("failed to quote withdrawal", err.Error()), err
		}
	}

	tds := decimal.Zero
	if account.TDSApplicable {
		tds = s.interest.TDS(interestEarned, account.TDSRate, decimal.Zero)
	}
	payout := account.PrincipalAmount.Add(interestEarned).Sub(tds)

	response := models.PrematureWithdrawalResponse{
		AccountNumber:    account.AccountNumber,
		AsOfDate:         asOf.Format(dateLayout),
		Principal:        account.PrincipalAmount.StringFixed(2),
		DaysElapsed:      daysElapsed,
		ContractRate:     contractRate.String(),
		PenaltyRate:      product.PenaltyRate.String(),
		EffectiveRate:    penalizedRate.String(),
		InterestEarned:   interestEarned.StringFixed(2),
		TDSAmount:        tds.StringFixed(2),
		IndicativePayout: payout.StringFixed(2),
	}

	return commons.SuccessResponse("withdrawal quote prepared", response), nil
}

func (s *AccountService) fetchAccount(ctx context.Context, accountNumber string) (domain.Account, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("account service account lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, err
	}
	return account, nil
}

func (s *AccountService) accruedBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	snapshot, err := s.balanceRepo.Latest(ctx, accountID, domain.BalanceInterestAccrued)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return snapshot.Amount, nil
}

func toAccountResponse(account domain.Account, accrued decimal.Decimal) models.AccountResponse {
	response := models.AccountResponse{
		ID:                  account.ID,
		AccountNumber:       account.AccountNumber,
		CustomerID:          account.CustomerID,
		ProductCode:         account.ProductCode,
		BranchCode:          account.BranchCode,
		Principal:           account.PrincipalAmount.StringFixed(2),
		InterestRate:        account.EffectiveRate().String(),
		TermMonths:          account.TermMonths,
		MaturityAmount:      account.MaturityAmount.StringFixed(2),
		EffectiveDate:       account.EffectiveDate.Format(dateLayout),
		MaturityDate:        account.MaturityDate.Format(dateLayout),
		InterestMethod:      string(account.InterestMethod),
		MaturityInstruction: string(account.MaturityInstruction),
		Status:              string(account.Status),
		AccruedInterest:     accrued.StringFixed(2),
		CreatedAt:           account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           account.UpdatedAt.Format(time.RFC3339),
	}
	if account.IBAN != nil {
		response.IBAN = *account.IBAN
	}
	if account.InterestMethod == domain.InterestMethodCompound {
		response.CompoundingFrequency = string(account.CompoundingFrequency)
	}
	if account.TransferAccount != nil {
		response.TransferAccount = *account.TransferAccount
	}
	if account.ClosureDate != nil {
		response.ClosureDate = account.ClosureDate.Format(dateLayout)
	}
	return response
}
