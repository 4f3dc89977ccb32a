package models

import (
	"errors"
	"strings"
)

type GenerateIdentifierRequest struct {
	BranchCode string `json:"branchCode,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
}

func (r GenerateIdentifierRequest) Validate() error {
	var errs []string

	if branch := strings.TrimSpace(r.BranchCode); branch != "" {
		if len(branch) > 3 {
			errs = append(errs, "branchCode must be at most 3 digits")
		} else {
			for _, ch := range branch {
				if ch < '0' || ch > '9' {
					errs = append(errs, "branchCode must be numeric")
					break
				}
			}
		}
	}

	if strategy := strings.ToLower(strings.TrimSpace(r.Strategy)); strategy != "" {
		if strategy != "standard" && strategy != "iban" {
			errs = append(errs, "strategy must be one of standard, iban")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type GenerateIdentifierResponse struct {
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban,omitempty"`
	Strategy      string `json:"strategy"`
	BranchCode    string `json:"branchCode"`
}

type ValidateIdentifierResponse struct {
	AccountNumber string `json:"accountNumber"`
	Valid         bool   `json:"valid"`
	Strategy      string `json:"strategy"`
}
