package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusMatured AccountStatus = "MATURED"
	AccountStatusClosed  AccountStatus = "CLOSED"
)

type InterestMethod string

const (
	InterestMethodSimple   InterestMethod = "SIMPLE"
	InterestMethodCompound InterestMethod = "COMPOUND"
)

type CompoundingFrequency string

const (
	CompoundingMonthly    CompoundingFrequency = "MONTHLY"
	CompoundingQuarterly  CompoundingFrequency = "QUARTERLY"
	CompoundingSemiAnnual CompoundingFrequency = "SEMI_ANNUAL"
	CompoundingAnnual     CompoundingFrequency = "ANNUAL"
)

// PeriodsPerYear returns the number of compounding periods per year.
// An unset frequency falls back to quarterly, the documented default
// for compound accounts.
func (f CompoundingFrequency) PeriodsPerYear() int {
	switch f {
	case CompoundingMonthly:
		return 12
	case CompoundingQuarterly:
		return 4
	case CompoundingSemiAnnual:
		return 2
	case CompoundingAnnual:
		return 1
	default:
		return 4
	}
}

func (f CompoundingFrequency) Valid() bool {
	switch f {
	case CompoundingMonthly, CompoundingQuarterly, CompoundingSemiAnnual, CompoundingAnnual:
		return true
	}
	return false
}

type MaturityInstruction string

const (
	MaturityHold               MaturityInstruction = "HOLD"
	MaturityCloseAndPayout     MaturityInstruction = "CLOSE_AND_PAYOUT"
	MaturityRenewPrincipalOnly MaturityInstruction = "RENEW_PRINCIPAL_ONLY"
	MaturityRenewWithInterest  MaturityInstruction = "RENEW_WITH_INTEREST"
	MaturityTransferToSavings  MaturityInstruction = "TRANSFER_TO_SAVINGS"
	MaturityTransferToCurrent  MaturityInstruction = "TRANSFER_TO_CURRENT"
)

func (i MaturityInstruction) Valid() bool {
	switch i {
	case MaturityHold, MaturityCloseAndPayout, MaturityRenewPrincipalOnly,
		MaturityRenewWithInterest, MaturityTransferToSavings, MaturityTransferToCurrent:
		return true
	}
	return false
}

// Account is one fixed-deposit contract.
type Account struct {
	ID                   string
	AccountNumber        string
	IBAN                 *string
	CustomerID           string
	ProductCode          string
	BranchCode           string
	PrincipalAmount      decimal.Decimal
	InterestRate         decimal.Decimal
	CustomInterestRate   *decimal.Decimal
	TermMonths           int
	MaturityAmount       decimal.Decimal
	EffectiveDate        time.Time
	MaturityDate         time.Time
	ClosureDate          *time.Time
	InterestMethod       InterestMethod
	CompoundingFrequency CompoundingFrequency
	MaturityInstruction  MaturityInstruction
	TransferAccount      *string
	TDSApplicable        bool
	TDSRate              decimal.Decimal
	Status               AccountStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EffectiveRate is the rate used for accrual: the custom override when
// present, else the nominal product rate.
func (a Account) EffectiveRate() decimal.Decimal {
	if a.CustomInterestRate != nil {
		return *a.CustomInterestRate
	}
	return a.InterestRate
}
