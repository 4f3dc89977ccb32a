package service_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
)

type IdentifierService interface {
	Generate(ctx context.Context, req models.GenerateIdentifierRequest) (commons.Response[models.GenerateIdentifierResponse], error)
	ValidateIdentifier(ctx context.Context, accountNumber, strategy string) (commons.Response[models.ValidateIdentifierResponse], error)
}
