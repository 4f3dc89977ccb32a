package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

func TestStandardGeneratorLuhnRoundTrip(t *testing.T) {
	gen := services.NewStandardAccountNumberGenerator(memory.NewSequenceRepository(100000), "001")

	generated, err := gen.Generate(context.Background(), "002")
	require.NoError(t, err)

	require.Len(t, generated.AccountNumber, 10)
	assert.Equal(t, "002", generated.BranchCode)
	assert.Equal(t, "002100000", generated.AccountNumber[:9])
	assert.True(t, gen.Validate(generated.AccountNumber))
}

func TestStandardGeneratorDetectsSingleDigitCorruption(t *testing.T) {
	gen := services.NewStandardAccountNumberGenerator(memory.NewSequenceRepository(100000), "001")

	generated, err := gen.Generate(context.Background(), "")
	require.NoError(t, err)
	require.True(t, gen.Validate(generated.AccountNumber))

	// Flipping any one digit must break the Luhn checksum.
	for i := 0; i < len(generated.AccountNumber); i++ {
		corrupted := []byte(generated.AccountNumber)
		corrupted[i] = '0' + (corrupted[i]-'0'+1)%10
		assert.False(t, gen.Validate(string(corrupted)), "position %d", i)
	}
}

func TestStandardGeneratorRejectsMalformedInput(t *testing.T) {
	gen := services.NewStandardAccountNumberGenerator(memory.NewSequenceRepository(100000), "001")

	assert.False(t, gen.Validate(""))
	assert.False(t, gen.Validate("12345"))
	assert.False(t, gen.Validate("00210000AB"))
	assert.False(t, gen.Validate("00210000012"))
}

func TestStandardGeneratorSequencesAdvance(t *testing.T) {
	gen := services.NewStandardAccountNumberGenerator(memory.NewSequenceRepository(100000), "001")

	first, err := gen.Generate(context.Background(), "003")
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), "003")
	require.NoError(t, err)

	assert.NotEqual(t, first.AccountNumber, second.AccountNumber)
	assert.Equal(t, "003100001", second.AccountNumber[:9])
}

func TestStandardGeneratorNormalizesBranchCode(t *testing.T) {
	gen := services.NewStandardAccountNumberGenerator(memory.NewSequenceRepository(100000), "001")

	generated, err := gen.Generate(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "007", generated.BranchCode)

	generated, err = gen.Generate(context.Background(), "90005")
	require.NoError(t, err)
	assert.Equal(t, "005", generated.BranchCode)
}

func TestIBANGeneratorRoundTrip(t *testing.T) {
	gen := services.NewIBANAccountNumberGenerator(memory.NewSequenceRepository(100000), "001", "IN", "CRDX")

	generated, err := gen.Generate(context.Background(), "002")
	require.NoError(t, err)

	require.NotEmpty(t, generated.IBAN)
	// IN + 2 check digits + CRDX + 10-digit account number.
	assert.Len(t, generated.IBAN, 18)
	assert.Equal(t, "IN", generated.IBAN[:2])
	assert.True(t, gen.Validate(generated.IBAN))

	// The underlying account number still validates on its own.
	assert.True(t, gen.Validate(generated.AccountNumber))
}

func TestIBANGeneratorDetectsCorruption(t *testing.T) {
	gen := services.NewIBANAccountNumberGenerator(memory.NewSequenceRepository(100000), "001", "IN", "CRDX")

	generated, err := gen.Generate(context.Background(), "")
	require.NoError(t, err)

	iban := []byte(generated.IBAN)
	last := iban[len(iban)-1]
	iban[len(iban)-1] = '0' + (last-'0'+1)%10
	assert.False(t, gen.Validate(string(iban)))

	assert.False(t, gen.Validate("GB82WEST12345698765432"), "foreign country prefix")
	assert.False(t, gen.Validate("IN00CRDX00!1000008"))
	assert.False(t, gen.Validate("IN12"))
}

func TestIBANGeneratorNormalizesBankAndCountry(t *testing.T) {
	gen := services.NewIBANAccountNumberGenerator(memory.NewSequenceRepository(100000), "001", "in", "cr")

	generated, err := gen.Generate(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "IN", generated.IBAN[:2])
	// Short bank codes are padded to four characters.
	assert.Equal(t, "CRXX", generated.IBAN[4:8])
	assert.True(t, gen.Validate(generated.IBAN))
}
