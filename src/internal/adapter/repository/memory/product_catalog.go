package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

// ProductCatalog serves FD product definitions. Product pricing is an
// external collaborator; this catalog stands in for it with the
// standard product set.
type ProductCatalog struct{}

func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{}
}

func (c *ProductCatalog) GetAll(_ context.Context) ([]domain.ProductInfo, error) {
	products := []domain.ProductInfo{
		{
			Code:           "FD-REG",
			Name:           "Regular Fixed Deposit",
			MinTermMonths:  3,
			MaxTermMonths:  120,
			MinRate:        decimal.NewFromFloat(3.5),
			MaxRate:        decimal.NewFromFloat(7.5),
			DefaultRate:    decimal.NewFromFloat(6.5),
			InterestMethod: domain.InterestMethodSimple,
			TDSApplicable:  true,
			TDSRate:        decimal.NewFromFloat(10),
			PenaltyRate:    decimal.NewFromFloat(1),
		},
		{
			Code:             "FD-CUM",
			Name:             "Cumulative Fixed Deposit",
			MinTermMonths:    6,
			MaxTermMonths:    120,
			MinRate:          decimal.NewFromFloat(4),
			MaxRate:          decimal.NewFromFloat(8),
			DefaultRate:      decimal.NewFromFloat(7),
			InterestMethod:   domain.InterestMethodCompound,
			DefaultFrequency: domain.CompoundingQuarterly,
			TDSApplicable:    true,
			TDSRate:          decimal.NewFromFloat(10),
			PenaltyRate:      decimal.NewFromFloat(1),
		},
		{
			Code:             "FD-SR",
			Name:             "Senior Citizen Fixed Deposit",
			MinTermMonths:    6,
			MaxTermMonths:    60,
			MinRate:          decimal.NewFromFloat(4.5),
			MaxRate:          decimal.NewFromFloat(8.5),
			DefaultRate:      decimal.NewFromFloat(7.75),
			InterestMethod:   domain.InterestMethodCompound,
			DefaultFrequency: domain.CompoundingQuarterly,
			TDSApplicable:    false,
			TDSRate:          decimal.Zero,
			PenaltyRate:      decimal.NewFromFloat(0.5),
		},
		{
			Code:           "FD-TAX",
			Name:           "Tax Saver Fixed Deposit",
			MinTermMonths:  60,
			MaxTermMonths:  60,
			MinRate:        decimal.NewFromFloat(5),
			MaxRate:        decimal.NewFromFloat(7),
			DefaultRate:    decimal.NewFromFloat(6.75),
			InterestMethod: domain.InterestMethodSimple,
			TDSApplicable:  true,
			TDSRate:        decimal.NewFromFloat(10),
			PenaltyRate:    decimal.NewFromFloat(2),
			AllowedInstructions: []domain.MaturityInstruction{
				domain.MaturityCloseAndPayout,
				domain.MaturityTransferToSavings,
				domain.MaturityHold,
			},
		},
	}

	return products, nil
}

func (c *ProductCatalog) FetchProduct(ctx context.Context, code string) (domain.ProductInfo, error) {
	products, err := c.GetAll(ctx)
	if err != nil {
		return domain.ProductInfo{}, err
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, product := range products {
		if product.Code == normalized {
			return product, nil
		}
	}
	return domain.ProductInfo{}, domain.ErrProductNotFound
}
