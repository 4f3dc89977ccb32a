package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

func TestCreateUserIssuesWorkingAPIKey(t *testing.T) {
	svc := services.NewUserService(memory.NewUserRepository())

	resp, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Username: "ops.meera",
		FullName: "Meera Krishnan",
		Role:     "MANAGER",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.APIKey)

	// The plaintext key is handed out once and must authenticate.
	user, err := svc.Authenticate(context.Background(), "ops.meera", resp.Data.APIKey)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleManager, user.Role)
	assert.True(t, user.Role.CanTriggerBatch())

	_, err = svc.Authenticate(context.Background(), "ops.meera", "not-the-key")
	assert.Error(t, err)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svc := services.NewUserService(memory.NewUserRepository())

	req := models.CreateUserRequest{Username: "ops.meera", FullName: "Meera Krishnan", Role: "ADMIN"}
	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	resp, err := svc.CreateUser(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := services.NewUserService(memory.NewUserRepository())

	resp, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Username: "ops.meera",
		FullName: "Meera Krishnan",
		Role:     "SUPERUSER",
	})
	require.Error(t, err)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestDeactivatedUserCannotAuthenticate(t *testing.T) {
	svc := services.NewUserService(memory.NewUserRepository())

	created, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Username: "ops.viewer",
		FullName: "Read Only",
		Role:     "VIEWER",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "ops.viewer", created.Data.APIKey)
	require.NoError(t, err)
	assert.False(t, user.Role.CanTriggerBatch())

	_, err = svc.DeactivateUser(context.Background(), created.Data.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "ops.viewer", created.Data.APIKey)
	assert.Error(t, err)
}

func TestDeactivateUnknownUser(t *testing.T) {
	svc := services.NewUserService(memory.NewUserRepository())

	resp, err := svc.DeactivateUser(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Equal(t, "User not found", resp.Message)
}
