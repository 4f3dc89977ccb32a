package service_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	GetStatement(ctx context.Context, accountNumber string) (commons.Response[models.AccountStatementResponse], error)
	PrematureWithdrawalInquiry(ctx context.Context, accountNumber string) (commons.Response[models.PrematureWithdrawalResponse], error)
}
