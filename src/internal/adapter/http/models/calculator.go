package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	Principal            string `json:"principal"`
	AnnualRate           string `json:"annualRate"`
	TermMonths           int    `json:"termMonths"`
	InterestMethod       string `json:"interestMethod"`
	CompoundingFrequency string `json:"compoundingFrequency,omitempty"`
	TDSApplicable        bool   `json:"tdsApplicable,omitempty"`
	TDSRate              string `json:"tdsRate,omitempty"`
	TDSThreshold         string `json:"tdsThreshold,omitempty"`
}

func (r CalculateRequest) Validate() error {
	var errs []string

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

	rate := strings.TrimSpace(r.AnnualRate)
	if rate == "" {
		errs = append(errs, "annualRate is required")
	} else {
		parsed, err := decimal.NewFromString(rate)
		if err != nil {
			errs = append(errs, "annualRate must be numeric")
		} else if parsed.LessThan(decimal.Zero) {
			errs = append(errs, "annualRate cannot be negative")
		}
	}

	if r.TermMonths <= 0 {
		errs = append(errs, "termMonths must be greater than zero")
	}

	method := strings.ToUpper(strings.TrimSpace(r.InterestMethod))
	if method == "" {
		errs = append(errs, "interestMethod is required")
	} else if method != "SIMPLE" && method != "COMPOUND" {
		errs = append(errs, "interestMethod must be one of SIMPLE, COMPOUND")
	}

	if freq := strings.ToUpper(strings.TrimSpace(r.CompoundingFrequency)); freq != "" {
		switch freq {
		case "MONTHLY", "QUARTERLY", "SEMI_ANNUAL", "ANNUAL":
		default:
			errs = append(errs, "compoundingFrequency must be one of MONTHLY, QUARTERLY, SEMI_ANNUAL, ANNUAL")
		}
	}

	if tdsRate := strings.TrimSpace(r.TDSRate); tdsRate != "" {
		parsed, err := decimal.NewFromString(tdsRate)
		if err != nil {
			errs = append(errs, "tdsRate must be numeric")
		} else if parsed.LessThan(decimal.Zero) || parsed.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, "tdsRate must be between 0 and 100")
		}
	}

	if threshold := strings.TrimSpace(r.TDSThreshold); threshold != "" {
		parsed, err := decimal.NewFromString(threshold)
		if err != nil {
			errs = append(errs, "tdsThreshold must be numeric")
		} else if parsed.LessThan(decimal.Zero) {
			errs = append(errs, "tdsThreshold cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type MonthlyBreakdownEntry struct {
	Month          int    `json:"month"`
	OpeningBalance string `json:"openingBalance"`
	InterestEarned string `json:"interestEarned"`
	ClosingBalance string `json:"closingBalance"`
}

type CalculateResponse struct {
	Principal            string                  `json:"principal"`
	AnnualRate           string                  `json:"annualRate"`
	TermMonths           int                     `json:"termMonths"`
	InterestMethod       string                  `json:"interestMethod"`
	CompoundingFrequency string                  `json:"compoundingFrequency,omitempty"`
	GrossInterest        string                  `json:"grossInterest"`
	TDSAmount            string                  `json:"tdsAmount"`
	NetInterest          string                  `json:"netInterest"`
	MaturityAmount       string                  `json:"maturityAmount"`
	MonthlyBreakdown     []MonthlyBreakdownEntry `json:"monthlyBreakdown,omitempty"`
}
