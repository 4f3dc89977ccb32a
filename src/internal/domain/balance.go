package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceType string

const (
	BalancePrincipal       BalanceType = "PRINCIPAL"
	BalanceInterestAccrued BalanceType = "INTEREST_ACCRUED"
	BalanceAvailable       BalanceType = "AVAILABLE"
)

// BalanceSnapshot is one point-in-time value for a balance category.
// Snapshots are appended, never edited; the current balance of a
// category is the snapshot with the latest as-of date.
type BalanceSnapshot struct {
	ID          string
	AccountID   string
	BalanceType BalanceType
	Amount      decimal.Decimal
	AsOfDate    time.Time
	Description string
	CreatedAt   time.Time
}
