package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

func newIdentifierService(defaultStrategy string) *services.IdentifierService {
	sequences := memory.NewSequenceRepository(100000)
	return services.NewIdentifierService(
		services.NewStandardAccountNumberGenerator(sequences, "001"),
		services.NewIBANAccountNumberGenerator(sequences, "001", "IN", "CRDX"),
		memory.NewBranchRepository(),
		defaultStrategy,
	)
}

func TestIdentifierServiceGeneratesStandardNumber(t *testing.T) {
	svc := newIdentifierService("standard")

	resp, err := svc.Generate(context.Background(), models.GenerateIdentifierRequest{BranchCode: "002"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Len(t, resp.Data.AccountNumber, 10)
	assert.Equal(t, "standard", resp.Data.Strategy)
	assert.Empty(t, resp.Data.IBAN)

	check, err := svc.ValidateIdentifier(context.Background(), resp.Data.AccountNumber, "standard")
	require.NoError(t, err)
	assert.True(t, check.Data.Valid)
}

func TestIdentifierServiceGeneratesIBAN(t *testing.T) {
	svc := newIdentifierService("standard")

	resp, err := svc.Generate(context.Background(), models.GenerateIdentifierRequest{
		BranchCode: "003",
		Strategy:   "iban",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.IBAN)

	check, err := svc.ValidateIdentifier(context.Background(), resp.Data.IBAN, "iban")
	require.NoError(t, err)
	assert.True(t, check.Data.Valid)
}

func TestIdentifierServiceRejectsUnknownBranch(t *testing.T) {
	svc := newIdentifierService("standard")

	resp, err := svc.Generate(context.Background(), models.GenerateIdentifierRequest{BranchCode: "999"})
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestIdentifierServiceRejectsUnknownStrategy(t *testing.T) {
	svc := newIdentifierService("standard")

	resp, err := svc.Generate(context.Background(), models.GenerateIdentifierRequest{Strategy: "fancy"})
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)

	_, err = svc.GeneratorFor("fancy")
	assert.Error(t, err)
}

func TestIdentifierServiceValidateFlagsCorruption(t *testing.T) {
	svc := newIdentifierService("standard")

	generated, err := svc.Generate(context.Background(), models.GenerateIdentifierRequest{})
	require.NoError(t, err)

	number := []byte(generated.Data.AccountNumber)
	number[5] = '0' + (number[5]-'0'+1)%10

	check, err := svc.ValidateIdentifier(context.Background(), string(number), "")
	require.NoError(t, err)
	assert.False(t, check.Data.Valid)
}
