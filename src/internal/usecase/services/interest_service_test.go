package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return parsed
}

func TestSimpleInterestForDays(t *testing.T) {
	svc := services.NewInterestService()

	// 50000 at 6.9% for 400 days: 50000*6.9*400/36500 = 3780.8219...
	interest, err := svc.SimpleInterestForDays(dec(t, "50000"), dec(t, "6.9"), 400)
	require.NoError(t, err)
	assert.Equal(t, "3780.82", interest.StringFixed(2))

	interest, err = svc.SimpleInterestForDays(dec(t, "100000"), dec(t, "7.3"), 1)
	require.NoError(t, err)
	assert.Equal(t, "20.00", interest.StringFixed(2))

	interest, err = svc.SimpleInterestForDays(dec(t, "50000"), dec(t, "6.9"), 0)
	require.NoError(t, err)
	assert.True(t, interest.IsZero())

	_, err = svc.SimpleInterestForDays(decimal.Zero, dec(t, "6.9"), 10)
	assert.Error(t, err)

	_, err = svc.SimpleInterestForDays(dec(t, "50000"), dec(t, "-1"), 10)
	assert.Error(t, err)
}

func TestSimpleInterestRoundsOnceAtTheEnd(t *testing.T) {
	svc := services.NewInterestService()

	// Summing per-day rounded figures would drift; the closed form for
	// N days must equal the unrounded product rounded once.
	interest, err := svc.SimpleInterestForDays(dec(t, "12345.67"), dec(t, "5.55"), 91)
	require.NoError(t, err)

	expected := dec(t, "12345.67").
		Mul(dec(t, "5.55")).
		Mul(decimal.NewFromInt(91)).
		Div(decimal.NewFromInt(36500)).
		Round(2)
	assert.True(t, interest.Equal(expected), "got %s want %s", interest, expected)
}

func TestCompoundMaturityAmountQuarterly(t *testing.T) {
	svc := services.NewInterestService()

	// 50000 at 7% for 12 months, quarterly: 50000*(1.0175)^4 = 53592.95.
	amount, err := svc.CompoundMaturityAmount(dec(t, "50000"), dec(t, "7"), 12, domain.CompoundingQuarterly)
	require.NoError(t, err)
	assert.Equal(t, "53592.95", amount.StringFixed(2))
}

func TestCompoundMaturityAmountMonthlyBeatsQuarterly(t *testing.T) {
	svc := services.NewInterestService()

	quarterly, err := svc.CompoundMaturityAmount(dec(t, "100000"), dec(t, "7.5"), 24, domain.CompoundingQuarterly)
	require.NoError(t, err)
	monthly, err := svc.CompoundMaturityAmount(dec(t, "100000"), dec(t, "7.5"), 24, domain.CompoundingMonthly)
	require.NoError(t, err)

	assert.True(t, monthly.GreaterThan(quarterly))
}

func TestMaturityAmountSimple(t *testing.T) {
	svc := services.NewInterestService()

	// 50000 at 6.5% for 12 whole months: 50000 + 50000*6.5*12/1200.
	amount, err := svc.MaturityAmount(dec(t, "50000"), dec(t, "6.5"), 12, domain.InterestMethodSimple, "")
	require.NoError(t, err)
	assert.Equal(t, "53250.00", amount.StringFixed(2))
}

func TestTDS(t *testing.T) {
	svc := services.NewInterestService()

	assert.Equal(t, "500.00", svc.TDS(dec(t, "5000"), dec(t, "10"), decimal.Zero).StringFixed(2))

	// Interest at or below a positive threshold is exempt.
	assert.True(t, svc.TDS(dec(t, "5000"), dec(t, "10"), dec(t, "40000")).IsZero())
	assert.True(t, svc.TDS(dec(t, "40000"), dec(t, "10"), dec(t, "40000")).IsZero())
	assert.Equal(t, "4500.00", svc.TDS(dec(t, "45000"), dec(t, "10"), dec(t, "40000")).StringFixed(2))

	assert.True(t, svc.TDS(decimal.Zero, dec(t, "10"), decimal.Zero).IsZero())
	assert.True(t, svc.TDS(dec(t, "5000"), decimal.Zero, decimal.Zero).IsZero())
}

func TestCalculateCompoundWithTDS(t *testing.T) {
	svc := services.NewInterestService()

	resp, err := svc.Calculate(context.Background(), models.CalculateRequest{
		Principal:            "50000",
		AnnualRate:           "7",
		TermMonths:           12,
		InterestMethod:       "COMPOUND",
		CompoundingFrequency: "QUARTERLY",
		TDSApplicable:        true,
		TDSRate:              "10",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, "53592.95", resp.Data.MaturityAmount)
	assert.Equal(t, "3592.95", resp.Data.GrossInterest)
	assert.Equal(t, "359.30", resp.Data.TDSAmount)
	assert.Equal(t, "3233.65", resp.Data.NetInterest)
	assert.Equal(t, "QUARTERLY", resp.Data.CompoundingFrequency)
	assert.Len(t, resp.Data.MonthlyBreakdown, 12)

	// Quarterly compounding credits interest only on boundary months.
	assert.Equal(t, "0.00", resp.Data.MonthlyBreakdown[0].InterestEarned)
	assert.Equal(t, "875.00", resp.Data.MonthlyBreakdown[2].InterestEarned)
	assert.Equal(t, "0.00", resp.Data.MonthlyBreakdown[3].InterestEarned)
}

func TestCalculateSimpleBreakdown(t *testing.T) {
	svc := services.NewInterestService()

	resp, err := svc.Calculate(context.Background(), models.CalculateRequest{
		Principal:      "120000",
		AnnualRate:     "6",
		TermMonths:     6,
		InterestMethod: "SIMPLE",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	require.Len(t, resp.Data.MonthlyBreakdown, 6)
	for _, entry := range resp.Data.MonthlyBreakdown {
		assert.Equal(t, "600.00", entry.InterestEarned)
	}
	assert.Equal(t, "123600.00", resp.Data.MaturityAmount)
}

func TestCalculateRejectsInvalidRequest(t *testing.T) {
	svc := services.NewInterestService()

	resp, err := svc.Calculate(context.Background(), models.CalculateRequest{
		Principal:      "-5",
		AnnualRate:     "7",
		TermMonths:     0,
		InterestMethod: "HYPERBOLIC",
	})
	require.Error(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Message)
}
