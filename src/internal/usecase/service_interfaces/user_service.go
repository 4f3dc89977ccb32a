package service_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (commons.Response[models.CreateUserResponse], error)
	Authenticate(ctx context.Context, username, apiKey string) (domain.User, error)
	DeactivateUser(ctx context.Context, userID string) (commons.Response[struct{}], error)
}
