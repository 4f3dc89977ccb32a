package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

const daysPerYear = 365

// powPrecision keeps at least twelve significant digits through the
// compound factor before the single final rounding.
const powPrecision = 12

var (
	hundred      = decimal.NewFromInt(100)
	yearBasis    = decimal.NewFromInt(100 * daysPerYear)
	monthsInYear = decimal.NewFromInt(12)
)

// InterestService is the deterministic calculation core. It holds no
// state and touches no repository; every batch service and the
// calculator endpoint route through it so all interest figures in the
// system come from one place.
type InterestService struct{}

func NewInterestService() *InterestService {
	return &InterestService{}
}

// SimpleInterestForDays computes P * R * days / (100 * 365), rounded
// half-up to two decimal places. Rounding happens exactly once, at the
// end.
func (s *InterestService) SimpleInterestForDays(principal, annualRate decimal.Decimal, days int) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("principal must be greater than zero")
	}
	if annualRate.LessThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("annualRate cannot be negative")
	}
	if days <= 0 {
		return decimal.Zero, nil
	}

	interest := principal.
		Mul(annualRate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(yearBasis)

	return interest.Round(2), nil
}

// DailyAccrual is one calendar day of simple interest on the current
// principal. Compound accounts accrue the same way; compounding is
// realised when accrued interest is capitalized into principal.
func (s *InterestService) DailyAccrual(principal, annualRate decimal.Decimal) (decimal.Decimal, error) {
	return s.SimpleInterestForDays(principal, annualRate, 1)
}

// CompoundMaturityAmount computes P * (1 + R/100/m)^(m*t) where m is
// the compounding periods per year and t the term in years. The factor
// is carried at full precision; only the product is rounded.
func (s *InterestService) CompoundMaturityAmount(
	principal, annualRate decimal.Decimal,
	termMonths int,
	frequency domain.CompoundingFrequency,
) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("principal must be greater than zero")
	}
	if annualRate.LessThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("annualRate cannot be negative")
	}
	if termMonths <= 0 {
		return decimal.Zero, fmt.Errorf("termMonths must be greater than zero")
	}

	periodsPerYear := decimal.NewFromInt(int64(frequency.PeriodsPerYear()))
	ratePerPeriod := annualRate.Div(hundred).Div(periodsPerYear)
	totalPeriods := periodsPerYear.
		Mul(decimal.NewFromInt(int64(termMonths))).
		Div(monthsInYear)

	factor, err := decimal.NewFromInt(1).Add(ratePerPeriod).PowWithPrecision(totalPeriods, powPrecision)
	if err != nil {
		return decimal.Zero, fmt.Errorf("compound factor: %w", err)
	}

	return principal.Mul(factor).Round(2), nil
}

// MaturityAmount projects the contractual maturity value for either
// interest method.
func (s *InterestService) MaturityAmount(
	principal, annualRate decimal.Decimal,
	termMonths int,
	method domain.InterestMethod,
	frequency domain.CompoundingFrequency,
) (decimal.Decimal, error) {
	if method == domain.InterestMethodCompound {
		return s.CompoundMaturityAmount(principal, annualRate, termMonths, frequency)
	}

	// Whole-month simple interest: P * R * months / (100 * 12).
	interest := principal.
		Mul(annualRate).
		Mul(decimal.NewFromInt(int64(termMonths))).
		Div(hundred).
		Div(monthsInYear)

	return principal.Add(interest).Round(2), nil
}

// TDS computes tax deducted at source on gross interest. A positive
// threshold exempts interest at or below it; a zero threshold means no
// exemption floor.
func (s *InterestService) TDS(grossInterest, tdsRate, threshold decimal.Decimal) decimal.Decimal {
	if grossInterest.LessThanOrEqual(decimal.Zero) || tdsRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if threshold.GreaterThan(decimal.Zero) && grossInterest.LessThanOrEqual(threshold) {
		return decimal.Zero
	}

	return grossInterest.Mul(tdsRate).Div(hundred).Round(2)
}

// Calculate serves the standalone calculator endpoint: interest, TDS
// and an indicative month-by-month breakdown without touching any
// account.
func (s *InterestService) Calculate(_ context.Context, req models.CalculateRequest) (commons.Response[models.CalculateResponse], error) {
	logger.Info("interest service calculate request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("interest service calculate validation failed", err, nil)
		return commons.ErrorResponse[models.CalculateResponse]("validation failed", err.Error()), err
	}

	principal, _ := decimal.NewFromString(strings.TrimSpace(req.Principal))
	annualRate, _ := decimal.NewFromString(strings.TrimSpace(req.AnnualRate))
	method := domain.InterestMethod(strings.ToUpper(strings.TrimSpace(req.InterestMethod)))
	frequency := domain.CompoundingFrequency(strings.ToUpper(strings.TrimSpace(req.CompoundingFrequency)))

	maturityAmount, err := s.MaturityAmount(principal, annualRate, req.TermMonths, method, frequency)
	if err != nil {
		logger.Error("interest service calculate maturity projection failed", err, nil)
		return commons.ErrorResponse[models.CalculateResponse]("failed to calculate", err.Error()), err
	}
	grossInterest := maturityAmount.Sub(principal)

	tdsRate, threshold := decimal.Zero, decimal.Zero
	if req.TDSApplicable {
		if raw := strings.TrimSpace(req.TDSRate); raw != "" {
			tdsRate, _ = decimal.NewFromString(raw)
		}
		if raw := strings.TrimSpace(req.TDSThreshold); raw != "" {
			threshold, _ = decimal.NewFromString(raw)
		}
	}
	tdsAmount := s.TDS(grossInterest, tdsRate, threshold)
	netInterest := grossInterest.Sub(tdsAmount)

	response := models.CalculateResponse{
		Principal:      principal.StringFixed(2),
		AnnualRate:     annualRate.String(),
		TermMonths:     req.TermMonths,
		InterestMethod: string(method),
		GrossInterest:  grossInterest.StringFixed(2),
		TDSAmount:      tdsAmount.StringFixed(2),
		NetInterest:    netInterest.StringFixed(2),
		MaturityAmount: maturityAmount.StringFixed(2),
	}
	if method == domain.InterestMethodCompound {
		if !frequency.Valid() {
			frequency = domain.CompoundingQuarterly
		}
		response.CompoundingFrequency = string(frequency)
	}
	response.MonthlyBreakdown = s.monthlyBreakdown(principal, annualRate, req.TermMonths, method, frequency)

	logger.Info("interest service calculate success", logger.Fields{
		"maturityAmount": response.MaturityAmount,
		"grossInterest":  response.GrossInterest,
	})

	return commons.SuccessResponse("calculation completed successfully", response), nil
}

// monthlyBreakdown walks the term month by month. Simple deposits earn
// a flat monthly slice on a constant principal; compound deposits are
// credited at each compounding boundary. The final maturity figure
// always comes from the closed-form projection, so the breakdown is
// indicative.
func (s *InterestService) monthlyBreakdown(
	principal, annualRate decimal.Decimal,
	termMonths int,
	method domain.InterestMethod,
	frequency domain.CompoundingFrequency,
) []models.MonthlyBreakdownEntry {
	entries := make([]models.MonthlyBreakdownEntry, 0, termMonths)

	if method == domain.InterestMethodSimple {
		monthly := principal.Mul(annualRate).Div(hundred).Div(monthsInYear).Round(2)
		running := principal
		for month := 1; month <= termMonths; month++ {
			closing := running.Add(monthly)
			entries = append(entries, models.MonthlyBreakdownEntry{
				Month:          month,
				OpeningBalance: running.StringFixed(2),
				InterestEarned: monthly.StringFixed(2),
				ClosingBalance: closing.StringFixed(2),
			})
			running = closing
		}
		return entries
	}

	monthsPerPeriod := 12 / frequency.PeriodsPerYear()
	ratePerPeriod := annualRate.Div(hundred).Div(decimal.NewFromInt(int64(frequency.PeriodsPerYear())))
	balance := principal
	for month := 1; month <= termMonths; month++ {
		opening := balance
		earned := decimal.Zero
		if month%monthsPerPeriod == 0 {
			earned = balance.Mul(ratePerPeriod).Round(2)
			balance = balance.Add(earned)
		}
		entries = append(entries, models.MonthlyBreakdownEntry{
			Month:          month,
			OpeningBalance: opening.StringFixed(2),
			InterestEarned: earned.StringFixed(2),
			ClosingBalance: balance.StringFixed(2),
		})
	}
	return entries
}
