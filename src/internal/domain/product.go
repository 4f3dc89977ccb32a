package domain

import "github.com/shopspring/decimal"

// CustomerInfo is the slice of customer data this engine needs from
// the customer service. It arrives already validated.
type CustomerInfo struct {
	CustomerID     string
	FullName       string
	Classification string
	Active         bool
}

// ProductInfo describes one FD product as served by the product
// catalog: rate bounds, TDS defaults and permitted dispositions.
type ProductInfo struct {
	Code                string
	Name                string
	MinTermMonths       int
	MaxTermMonths       int
	MinRate             decimal.Decimal
	MaxRate             decimal.Decimal
	DefaultRate         decimal.Decimal
	InterestMethod      InterestMethod
	DefaultFrequency    CompoundingFrequency
	TDSApplicable       bool
	TDSRate             decimal.Decimal
	PenaltyRate         decimal.Decimal
	AllowedInstructions []MaturityInstruction
}

// AllowsInstruction reports whether the product permits the given
// maturity disposition. An empty list permits all of them.
func (p ProductInfo) AllowsInstruction(instruction MaturityInstruction) bool {
	if len(p.AllowedInstructions) == 0 {
		return true
	}
	for _, allowed := range p.AllowedInstructions {
		if allowed == instruction {
			return true
		}
	}
	return false
}

// Branch is one entry of the branch directory used for account number
// generation.
type Branch struct {
	BranchCode string
	BranchName string
}
