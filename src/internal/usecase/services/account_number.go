package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/repo_interfaces"
)

// GeneratedIdentifier is the output of one generator call. IBAN is
// empty for the standard strategy.
type GeneratedIdentifier struct {
	AccountNumber string
	IBAN          string
	BranchCode    string
}

// AccountNumberGenerator issues and validates FD account identifiers.
// Implementations must never hand out the same number twice, even
// under concurrent calls; uniqueness rides on the atomic branch
// sequence.
type AccountNumberGenerator interface {
	Generate(ctx context.Context, branchCode string) (GeneratedIdentifier, error)
	Validate(accountNumber string) bool
	Strategy() string
}

// StandardAccountNumberGenerator issues 10-digit numbers laid out as
// branch (3) + sequence (6) + Luhn check digit (1). Any single-digit
// corruption fails validation.
type StandardAccountNumberGenerator struct {
	sequenceRepo      repo_interfaces.SequenceRepository
	defaultBranchCode string
}

func NewStandardAccountNumberGenerator(
	sequenceRepo repo_interfaces.SequenceRepository,
	defaultBranchCode string,
) *StandardAccountNumberGenerator {
	return &StandardAccountNumberGenerator{
		sequenceRepo:      sequenceRepo,
		defaultBranchCode: normalizeBranchCode(defaultBranchCode, "001"),
	}
}

func (g *StandardAccountNumberGenerator) Strategy() string {
	return "standard"
}

func (g *StandardAccountNumberGenerator) Generate(ctx context.Context, branchCode string) (GeneratedIdentifier, error) {
	branch := normalizeBranchCode(branchCode, g.defaultBranchCode)

	sequence, err := g.sequenceRepo.Next(ctx, branch)
	if err != nil {
		return GeneratedIdentifier{}, fmt.Errorf("next sequence for branch %s: %w", branch, err)
	}

	base := fmt.Sprintf("%s%06d", branch, sequence)
	accountNumber := base + string(rune('0'+luhnCheckDigit(base)))

	return GeneratedIdentifier{
		AccountNumber: accountNumber,
		BranchCode:    branch,
	}, nil
}

func (g *StandardAccountNumberGenerator) Validate(accountNumber string) bool {
	accountNumber = strings.TrimSpace(accountNumber)
	if len(accountNumber) != 10 || !isDigits(accountNumber) {
		return false
	}
	return luhnCheckDigit(accountNumber[:9]) == int(accountNumber[9]-'0')
}

// luhnCheckDigit computes the digit that makes base+digit pass the
// Luhn checksum. Doubling starts from the rightmost base digit.
func luhnCheckDigit(base string) int {
	sum := 0
	double := true
	for i := len(base) - 1; i >= 0; i-- {
		digit := int(base[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return (10 - sum%10) % 10
}

// IBANAccountNumberGenerator wraps the standard generator and derives
// an IBAN with ISO 13616 mod-97 check digits from the same underlying
// number.
type IBANAccountNumberGenerator struct {
	inner       *StandardAccountNumberGenerator
	countryCode string
	bankCode    string
}

func NewIBANAccountNumberGenerator(
	sequenceRepo repo_interfaces.SequenceRepository,
	defaultBranchCode, countryCode, bankCode string,
) *IBANAccountNumberGenerator {
	return &IBANAccountNumberGenerator{
		inner:       NewStandardAccountNumberGenerator(sequenceRepo, defaultBranchCode),
		countryCode: normalizeCountryCode(countryCode),
		bankCode:    normalizeBankCode(bankCode),
	}
}

func (g *IBANAccountNumberGenerator) Strategy() string {
	return "iban"
}

func (g *IBANAccountNumberGenerator) Generate(ctx context.Context, branchCode string) (GeneratedIdentifier, error) {
	generated, err := g.inner.Generate(ctx, branchCode)
	if err != nil {
		return GeneratedIdentifier{}, err
	}

	generated.IBAN = g.ToIBAN(generated.AccountNumber)
	return generated, nil
}

// ToIBAN builds countryCode + check digits + bankCode + accountNumber.
// Check digits make the rearranged string congruent to 1 mod 97.
func (g *IBANAccountNumberGenerator) ToIBAN(accountNumber string) string {
	bban := g.bankCode + accountNumber
	remainder := mod97(bban + g.countryCode + "00")
	checkDigits := 98 - remainder
	return fmt.Sprintf("%s%02d%s", g.countryCode, checkDigits, bban)
}

// Validate accepts either a bare account number or a full IBAN issued
// by this generator.
func (g *IBANAccountNumberGenerator) Validate(identifier string) bool {
	identifier = strings.ToUpper(strings.TrimSpace(identifier))
	if len(identifier) == 10 && isDigits(identifier) {
		return g.inner.Validate(identifier)
	}
	if len(identifier) < 5 || !strings.HasPrefix(identifier, g.countryCode) {
		return false
	}
	// Rearranged IBAN must be congruent to 1 mod 97.
	rearranged := identifier[4:] + identifier[:4]
	for _, ch := range rearranged {
		if (ch < '0' || ch > '9') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return mod97(rearranged) == 1
}

// mod97 reduces the expanded numeric form of the input incrementally,
// so arbitrarily long IBANs never overflow.
func mod97(input string) int {
	remainder := 0
	for _, ch := range input {
		switch {
		case ch >= '0' && ch <= '9':
			remainder = (remainder*10 + int(ch-'0')) % 97
		case ch >= 'A' && ch <= 'Z':
			// Letters expand to two digits: A=10 .. Z=35.
			value := int(ch-'A') + 10
			remainder = (remainder*100 + value) % 97
		}
	}
	return remainder
}

func normalizeBranchCode(branchCode, fallback string) string {
	branch := strings.TrimSpace(branchCode)
	if branch == "" {
		branch = fallback
	}
	if len(branch) > 3 {
		branch = branch[len(branch)-3:]
	}
	for len(branch) < 3 {
		branch = "0" + branch
	}
	return branch
}

func normalizeBankCode(bankCode string) string {
	code := strings.ToUpper(strings.TrimSpace(bankCode))
	if code == "" {
		code = "CRDX"
	}
	if len(code) > 4 {
		code = code[:4]
	}
	for len(code) < 4 {
		code += "X"
	}
	return code
}

func normalizeCountryCode(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(code) != 2 {
		return "IN"
	}
	return code
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
