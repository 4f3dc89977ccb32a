package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

// IdentifierService exposes the account number generators over the
// API: minting identifiers ahead of account opening and validating
// externally supplied ones.
type IdentifierService struct {
	standard   *StandardAccountNumberGenerator
	iban       *IBANAccountNumberGenerator
	branchRepo repo_interfaces.BranchRepository
	defaultGen string
}

func NewIdentifierService(
	standard *StandardAccountNumberGenerator,
	iban *IBANAccountNumberGenerator,
	branchRepo repo_interfaces.BranchRepository,
	defaultStrategy string,
) *IdentifierService {
	strategy := strings.ToLower(strings.TrimSpace(defaultStrategy))
	if strategy != "iban" {
		strategy = "standard"
	}
	return &IdentifierService{
		standard:   standard,
		iban:       iban,
		branchRepo: branchRepo,
		defaultGen: strategy,
	}
}

// GeneratorFor resolves a strategy name to its generator, falling back
// to the configured default for an empty name.
func (s *IdentifierService) GeneratorFor(strategy string) (AccountNumberGenerator, error) {
	name := strings.ToLower(strings.TrimSpace(strategy))
	if name == "" {
		name = s.defaultGen
	}
	switch name {
	case "standard":
		return s.standard, nil
	case "iban":
		return s.iban, nil
	}
	return nil, fmt.Errorf("unknown generator strategy %q", strategy)
}

func (s *IdentifierService) Generate(ctx context.Context, req models.GenerateIdentifierRequest) (commons.Response[models.GenerateIdentifierResponse], error) {
	logger.Info("identifier service generate request", logger.Fields{
		"branchCode": req.BranchCode,
		"strategy":   req.Strategy,
	})

	if err := req.Validate(); err != nil {
		logger.Error("identifier service generate validation failed", err, nil)
		return commons.ErrorResponse[models.GenerateIdentifierResponse]("validation failed", err.Error()), err
	}

	if branch := strings.TrimSpace(req.BranchCode); branch != "" {
		exists, err := s.branchRepo.Exists(ctx, normalizeBranchCode(branch, branch))
		if err != nil {
			logger.Error("identifier service branch lookup failed", err, logger.Fields{
				"branchCode": branch,
			})
			return commons.ErrorResponse[models.GenerateIdentifierResponse]("failed to generate identifier", "Unable to generate identifier right now"), err
		}
		if !exists {
			err := fmt.Errorf("branchCode %s is not a known branch", branch)
			return commons.ErrorResponse[models.GenerateIdentifierResponse]("validation failed", err.Error()), err
		}
	}

	generator, err := s.GeneratorFor(req.Strategy)
	if err != nil {
		logger.Error("identifier service generator resolution failed", err, nil)
		return commons.ErrorResponse[models.GenerateIdentifierResponse]("validation failed", err.Error()), err
	}

	generated, err := generator.Generate(ctx, req.BranchCode)
	if err != nil {
		logger.Error("identifier service generate failed", err, logger.Fields{
			"branchCode": req.BranchCode,
			"strategy":   generator.Strategy(),
		})
		if errors.Is(err, domain.ErrSequenceExhausted) {
			return commons.ErrorResponse[models.GenerateIdentifierResponse]("failed to generate identifier", "Branch sequence is exhausted"), err
		}
		return commons.ErrorResponse[models.GenerateIdentifierResponse]("failed to generate identifier", "Unable to generate identifier right now"), err
	}

	response := models.GenerateIdentifierResponse{
		AccountNumber: generated.AccountNumber,
		IBAN:          generated.IBAN,
		Strategy:      generator.Strategy(),
		BranchCode:    generated.BranchCode,
	}

	logger.Info("identifier service generate success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"strategy":      response.Strategy,
	})

	return commons.SuccessResponse("identifier generated successfully", response), nil
}

func (s *IdentifierService) ValidateIdentifier(_ context.Context, accountNumber, strategy string) (commons.Response[models.ValidateIdentifierResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		err := fmt.Errorf("accountNumber is required")
		return commons.ErrorResponse[models.ValidateIdentifierResponse]("validation failed", err.Error()), err
	}

	generator, err := s.GeneratorFor(strategy)
	if err != nil {
		return commons.ErrorResponse[models.ValidateIdentifierResponse]("validation failed", err.Error()), err
	}

	response := models.ValidateIdentifierResponse{
		AccountNumber: accountNumber,
		Valid:         generator.Validate(accountNumber),
		Strategy:      generator.Strategy(),
	}

	return commons.SuccessResponse("identifier checked", response), nil
}
