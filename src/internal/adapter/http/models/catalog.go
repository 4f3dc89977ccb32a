package models

type BranchResponse struct {
	BranchCode string `json:"branchCode"`
	BranchName string `json:"branchName"`
}

type ProductResponse struct {
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	MinTermMonths        int      `json:"minTermMonths"`
	MaxTermMonths        int      `json:"maxTermMonths"`
	MinRate              string   `json:"minRate"`
	MaxRate              string   `json:"maxRate"`
	DefaultRate          string   `json:"defaultRate"`
	InterestMethod       string   `json:"interestMethod"`
	CompoundingFrequency string   `json:"compoundingFrequency,omitempty"`
	TDSApplicable        bool     `json:"tdsApplicable"`
	TDSRate              string   `json:"tdsRate"`
	PenaltyRate          string   `json:"penaltyRate"`
	AllowedInstructions  []string `json:"allowedInstructions,omitempty"`
}
