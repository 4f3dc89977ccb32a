package service_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
)

type CalculatorService interface {
	Calculate(ctx context.Context, req models.CalculateRequest) (commons.Response[models.CalculateResponse], error)
}
