package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"stocksmart/models"
)

// ErrUserNotFound is returned when no user matches the login.
var ErrUserNotFound = errors.New("user not found")

// UserStore reads users for authentication.
type UserStore struct {
	db Querier
}

// NewUserStore creates a UserStore over db.
func NewUserStore(db Querier) *UserStore {
	return &UserStore{db: db}
}

// FindUserForLogin looks a user up by email and role.
func (s *UserStore) FindUserForLogin(ctx context.Context, email, role string) (models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1 AND role = $2`

	var user models.User
	err := s.db.QueryRow(ctx, query, email, role).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
