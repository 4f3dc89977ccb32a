package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionOpeningDeposit         TransactionType = "OPENING_DEPOSIT"
	TransactionInterestAccrual        TransactionType = "INTEREST_ACCRUAL"
	TransactionInterestCapitalization TransactionType = "INTEREST_CAPITALIZATION"
	TransactionMaturityPayout         TransactionType = "MATURITY_PAYOUT"
	TransactionMaturityRenewal        TransactionType = "MATURITY_RENEWAL"
	TransactionMaturityTransfer       TransactionType = "MATURITY_TRANSFER"
	TransactionWithdrawal             TransactionType = "WITHDRAWAL"
)

// EventKind groups transaction types for idempotency checks. Together
// with PeriodKey it forms the typed already-processed marker; the
// engine never scans descriptions for dates.
type EventKind string

const (
	EventKindOpening        EventKind = "OPENING"
	EventKindAccrual        EventKind = "ACCRUAL"
	EventKindCapitalization EventKind = "CAPITALIZATION"
	EventKindMaturity       EventKind = "MATURITY"
	EventKindWithdrawal     EventKind = "WITHDRAWAL"
)

// Transaction is one immutable ledger event. The only permitted
// mutation after creation is flagging a reversal.
type Transaction struct {
	ID              string
	AccountID       string
	Reference       string
	Type            TransactionType
	EventKind       EventKind
	PeriodKey       string
	Amount          decimal.Decimal
	TransactionDate time.Time
	ValueDate       time.Time
	Description     string
	PrincipalAfter  decimal.Decimal
	InterestAfter   decimal.Decimal
	TotalAfter      decimal.Decimal
	PerformedBy     string
	Reversed        bool
	ReversalOfID    *string
	CreatedAt       time.Time
}
