package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/events"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

type accountFixture struct {
	*batchFixture
	customers *memory.CustomerDirectory
	service   *services.AccountService
}

func newAccountFixture(today time.Time) *accountFixture {
	f := &accountFixture{
		batchFixture: newBatchFixture(),
		customers: memory.NewCustomerDirectory(domain.CustomerInfo{
			CustomerID:     "CUST-1001",
			FullName:       "Meera Krishnan",
			Classification: "RETAIL",
			Active:         true,
		}),
	}
	f.service = services.NewAccountService(
		f.accountRepo,
		f.txnRepo,
		f.balanceRepo,
		memory.NewBranchRepository(),
		f.customers,
		memory.NewProductCatalog(),
		services.NewStandardAccountNumberGenerator(memory.NewSequenceRepository(100000), "001"),
		services.NewInterestService(),
		events.NewLogPublisher(),
		clock.FixedClock{Date: today},
	)
	return f
}

func openRequest() models.OpenAccountRequest {
	return models.OpenAccountRequest{
		CustomerID:          "CUST-1001",
		ProductCode:         "FD-REG",
		Principal:           "50000",
		TermMonths:          12,
		MaturityInstruction: "CLOSE_AND_PAYOUT",
	}
}

func TestOpenAccountSimpleDeposit(t *testing.T) {
	today := date(2026, time.March, 1)
	f := newAccountFixture(today)

	resp, err := f.service.OpenAccount(context.Background(), openRequest())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)

	account := *resp.Data
	assert.Len(t, account.AccountNumber, 10)
	assert.Equal(t, "ACTIVE", account.Status)
	assert.Equal(t, "2026-03-01", account.EffectiveDate)
	assert.Equal(t, "2027-03-01", account.MaturityDate)
	// FD-REG defaults to 6.5% simple: 50000 + 50000*6.5*12/1200.
	assert.Equal(t, "6.5", account.InterestRate)
	assert.Equal(t, "53250.00", account.MaturityAmount)
	assert.Equal(t, "0.00", account.AccruedInterest)

	stored, err := f.accountRepo.GetByAccountNumber(context.Background(), account.AccountNumber)
	require.NoError(t, err)

	transactions, err := f.txnRepo.ListByAccount(context.Background(), stored.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, domain.TransactionOpeningDeposit, transactions[0].Type)
	assert.Equal(t, "50000.00", transactions[0].Amount.StringFixed(2))

	assert.Equal(t, "50000.00", f.latestBalance(t, stored.ID, domain.BalancePrincipal).StringFixed(2))
	assert.Equal(t, "0.00", f.latestBalance(t, stored.ID, domain.BalanceInterestAccrued).StringFixed(2))
}

func TestOpenAccountCompoundProjection(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	req := openRequest()
	req.ProductCode = "FD-CUM"
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.NoError(t, err)
	require.True(t, resp.Success)

	// FD-CUM defaults to 7% compounded quarterly.
	assert.Equal(t, "53592.95", resp.Data.MaturityAmount)
	assert.Equal(t, "QUARTERLY", resp.Data.CompoundingFrequency)
}

func TestOpenAccountRejectsUnknownCustomer(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	req := openRequest()
	req.CustomerID = "CUST-9999"
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.Error(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Customer not found", resp.Message)
}

func TestOpenAccountRejectsInactiveCustomer(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))
	f.customers.Put(domain.CustomerInfo{CustomerID: "CUST-2002", FullName: "Dormant", Active: false})

	req := openRequest()
	req.CustomerID = "CUST-2002"
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestOpenAccountRejectsRateOutsideProductBand(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	req := openRequest()
	req.InterestRate = "12.5"
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestOpenAccountRejectsTermOutsideProductBounds(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	req := openRequest()
	req.TermMonths = 2
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestOpenAccountRejectsFrequencyOnSimpleProduct(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	req := openRequest()
	req.CompoundingFrequency = "MONTHLY"
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestOpenAccountRejectsDisallowedInstruction(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	// The tax saver product locks in funds; renewal is not offered.
	req := openRequest()
	req.ProductCode = "FD-TAX"
	req.TermMonths = 60
	req.MaturityInstruction = "RENEW_WITH_INTEREST"
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestOpenAccountRejectsTransferInstructionWithoutDestination(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	req := openRequest()
	req.MaturityInstruction = "TRANSFER_TO_SAVINGS"
	resp, err := f.service.OpenAccount(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestGetAccountNotFound(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	resp, err := f.service.GetAccount(context.Background(), "0019999999")
	require.Error(t, err)
	assert.Equal(t, "Account not found", resp.Message)
}

func TestGetStatementListsLedger(t *testing.T) {
	f := newAccountFixture(date(2026, time.March, 1))

	opened, err := f.service.OpenAccount(context.Background(), openRequest())
	require.NoError(t, err)

	resp, err := f.service.GetStatement(context.Background(), opened.Data.AccountNumber)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Data.Transactions, 1)
	assert.Equal(t, string(domain.TransactionOpeningDeposit), resp.Data.Transactions[0].Type)
}

func TestPrematureWithdrawalQuote(t *testing.T) {
	today := date(2026, time.July, 1)
	f := newAccountFixture(today)

	account := activeAccount("0011000001", "50000", "6.5",
		date(2026, time.January, 1), date(2027, time.January, 1))
	account.TDSApplicable = true
	account.TDSRate = dec(t, "10")
	created := f.addAccount(t, account)

	resp, err := f.service.PrematureWithdrawalInquiry(context.Background(), created.AccountNumber)
	require.NoError(t, err)
	require.True(t, resp.Success)

	quote := *resp.Data
	// 181 days elapsed at 6.5% less the 1% penalty.
	assert.Equal(t, 181, quote.DaysElapsed)
	assert.Equal(t, "6.5", quote.ContractRate)
	assert.Equal(t, "5.5", quote.EffectiveRate)
	// 50000*5.5*181/36500 = 1363.6986... -> 1363.70.
	assert.Equal(t, "1363.70", quote.InterestEarned)
	assert.Equal(t, "136.37", quote.TDSAmount)
	assert.Equal(t, "51227.33", quote.IndicativePayout)

	// Quote only: no transaction and no balance movement.
	transactions, err := f.txnRepo.ListByAccount(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestPrematureWithdrawalRejectsClosedAccount(t *testing.T) {
	f := newAccountFixture(date(2026, time.July, 1))

	account := activeAccount("0011000001", "50000", "6.5",
		date(2026, time.January, 1), date(2027, time.January, 1))
	account.Status = domain.AccountStatusClosed
	created := f.addAccount(t, account)

	resp, err := f.service.PrematureWithdrawalInquiry(context.Background(), created.AccountNumber)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}
