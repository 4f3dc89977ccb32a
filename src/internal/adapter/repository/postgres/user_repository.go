package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
INSERT INTO fd_users (
	username,
	full_name,
	role,
	api_key_hash,
	active
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.FullName,
		user.Role,
		user.APIKeyHash,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return domain.User{}, fmt.Errorf("create fd user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `
SELECT id, username, full_name, role, api_key_hash, active, created_at, updated_at
FROM fd_users
WHERE username = $1`

	var user domain.User
	if err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Role,
		&user.APIKeyHash,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get fd user %s: %w", username, err)
	}

	return user, nil
}

func (r *UserRepository) Deactivate(ctx context.Context, userID string) error {
	const query = `UPDATE fd_users SET active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("deactivate fd user: %w", err)
	}
	return requireRow(result, domain.ErrUserNotFound)
}
