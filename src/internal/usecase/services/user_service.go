package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

// UserService manages the bank operators allowed to call the API.
// Operators authenticate with an API key that is generated once and
// stored only as a bcrypt hash.
type UserService struct {
	userRepo repo_interfaces.UserRepository
}

func NewUserService(userRepo repo_interfaces.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (commons.Response[models.CreateUserResponse], error) {
	logger.Info("user service create user request", logger.Fields{
		"username": req.Username,
		"role":     req.Role,
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service create user validation failed", err, nil)
		return commons.ErrorResponse[models.CreateUserResponse]("validation failed", err.Error()), err
	}

	username := strings.TrimSpace(req.Username)
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		err := fmt.Errorf("username %s already exists", username)
		return commons.ErrorResponse[models.CreateUserResponse]("validation failed", err.Error()), err
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("user service existing user check failed", err, logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[models.CreateUserResponse]("failed to create user", "Unable to create user right now"), err
	}

	apiKey := newAPIKey()
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("user service api key hash failed", err, nil)
		return commons.ErrorResponse[models.CreateUserResponse]("failed to create user", "Unable to create user right now"), err
	}

	user := domain.User{
		Username:   username,
		FullName:   strings.TrimSpace(req.FullName),
		Role:       domain.UserRole(strings.ToUpper(strings.TrimSpace(req.Role))),
		APIKeyHash: string(hash),
		Active:     true,
	}
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		logger.Error("user service create user repository failed", err, logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[models.CreateUserResponse]("failed to create user", "Unable to create user right now"), err
	}

	response := models.CreateUserResponse{
		ID:        created.ID,
		Username:  created.Username,
		FullName:  created.FullName,
		Role:      string(created.Role),
		APIKey:    apiKey,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("user service create user success", logger.Fields{
		"userId":   created.ID,
		"username": created.Username,
		"role":     string(created.Role),
	})

	return commons.SuccessResponse("user created successfully", response), nil
}

// Authenticate resolves an operator by username and verifies the API
// key against the stored hash.
func (s *UserService) Authenticate(ctx context.Context, username, apiKey string) (domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return domain.User{}, err
	}
	if !user.Active {
		return domain.User{}, fmt.Errorf("user %s is deactivated", user.Username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.APIKeyHash), []byte(apiKey)); err != nil {
		return domain.User{}, fmt.Errorf("invalid api key for user %s", user.Username)
	}
	return user, nil
}

func (s *UserService) DeactivateUser(ctx context.Context, userID string) (commons.Response[struct{}], error) {
	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[struct{}]("validation failed", err.Error()), err
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		logger.Error("user service deactivate failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrUserNotFound) {
			return commons.ErrorResponse[struct{}]("User not found"), err
		}
		return commons.ErrorResponse[struct{}]("failed to deactivate user", "Unable to deactivate user right now"), err
	}

	return commons.SuccessResponse("user deactivated successfully", struct{}{}), nil
}

func newAPIKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
}
