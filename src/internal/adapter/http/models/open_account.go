package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type OpenAccountRequest struct {
	CustomerID           string `json:"customerId"`
	ProductCode          string `json:"productCode"`
	BranchCode           string `json:"branchCode,omitempty"`
	Principal            string `json:"principal"`
	TermMonths           int    `json:"termMonths"`
	InterestRate         string `json:"interestRate,omitempty"`
	CompoundingFrequency string `json:"compoundingFrequency,omitempty"`
	MaturityInstruction  string `json:"maturityInstruction"`
	TransferAccount      string `json:"transferAccount,omitempty"`
	EffectiveDate        string `json:"effectiveDate,omitempty"`
}

func (r OpenAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}

	if strings.TrimSpace(r.ProductCode) == "" {
		errs = append(errs, "productCode is required")
	}

	principal := strings.TrimSpace(r.Principal)
	if principal == "" {
		errs = append(errs, "principal is required")
	} else {
		parsed, err := decimal.NewFromString(principal)
		if err != nil {
			errs = append(errs, "principal must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "principal must be greater than zero")
		}
	}

	if r.TermMonths <= 0 {
		errs = append(errs, "termMonths must be greater than zero")
	}

	if rate := strings.TrimSpace(r.InterestRate); rate != "" {
		parsed, err := decimal.NewFromString(rate)
		if err != nil {
			errs = append(errs, "interestRate must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "interestRate must be greater than zero")
		}
	}

	if freq := strings.ToUpper(strings.TrimSpace(r.CompoundingFrequency)); freq != "" {
		switch freq {
		case "MONTHLY", "QUARTERLY", "SEMI_ANNUAL", "ANNUAL":
		default:
			errs = append(errs, "compoundingFrequency must be one of MONTHLY, QUARTERLY, SEMI_ANNUAL, ANNUAL")
		}
	}

	instruction := strings.ToUpper(strings.TrimSpace(r.MaturityInstruction))
	if instruction == "" {
		errs = append(errs, "maturityInstruction is required")
	} else {
		switch instruction {
		case "HOLD", "CLOSE_AND_PAYOUT", "RENEW_PRINCIPAL_ONLY", "RENEW_WITH_INTEREST",
			"TRANSFER_TO_SAVINGS", "TRANSFER_TO_CURRENT":
		default:
			errs = append(errs, "maturityInstruction is not a recognised disposition")
		}
	}

	if instruction == "TRANSFER_TO_SAVINGS" || instruction == "TRANSFER_TO_CURRENT" {
		if strings.TrimSpace(r.TransferAccount) == "" {
			errs = append(errs, "transferAccount is required for transfer dispositions")
		}
	}

	if date := strings.TrimSpace(r.EffectiveDate); date != "" {
		if !isISODate(date) {
			errs = append(errs, "effectiveDate must be formatted YYYY-MM-DD")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func isISODate(raw string) bool {
	if len(raw) != 10 || raw[4] != '-' || raw[7] != '-' {
		return false
	}
	for i, ch := range raw {
		if i == 4 || i == 7 {
			continue
		}
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

type AccountResponse struct {
	ID                   string `json:"id"`
	AccountNumber        string `json:"accountNumber"`
	IBAN                 string `json:"iban,omitempty"`
	CustomerID           string `json:"customerId"`
	ProductCode          string `json:"productCode"`
	BranchCode           string `json:"branchCode"`
	Principal            string `json:"principal"`
	InterestRate         string `json:"interestRate"`
	TermMonths           int    `json:"termMonths"`
	MaturityAmount       string `json:"maturityAmount"`
	EffectiveDate        string `json:"effectiveDate"`
	MaturityDate         string `json:"maturityDate"`
	ClosureDate          string `json:"closureDate,omitempty"`
	InterestMethod       string `json:"interestMethod"`
	CompoundingFrequency string `json:"compoundingFrequency,omitempty"`
	MaturityInstruction  string `json:"maturityInstruction"`
	TransferAccount      string `json:"transferAccount,omitempty"`
	Status               string `json:"status"`
	AccruedInterest      string `json:"accruedInterest,omitempty"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
}

type TransactionResponse struct {
	ID              string `json:"id"`
	Reference       string `json:"reference"`
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transactionDate"`
	ValueDate       string `json:"valueDate"`
	Description     string `json:"description,omitempty"`
	PrincipalAfter  string `json:"principalAfter"`
	InterestAfter   string `json:"interestAfter"`
	TotalAfter      string `json:"totalAfter"`
	Reversed        bool   `json:"reversed,omitempty"`
}

type AccountStatementResponse struct {
	Account      AccountResponse       `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

type PrematureWithdrawalResponse struct {
	AccountNumber    string `json:"accountNumber"`
	AsOfDate         string `json:"asOfDate"`
	Principal        string `json:"principal"`
	DaysElapsed      int    `json:"daysElapsed"`
	ContractRate     string `json:"contractRate"`
	PenaltyRate      string `json:"penaltyRate"`
	EffectiveRate    string `json:"effectiveRate"`
	InterestEarned   string `json:"interestEarned"`
	TDSAmount        string `json:"tdsAmount"`
	IndicativePayout string `json:"indicativePayout"`
}
