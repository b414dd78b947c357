package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/database"
	"github.com/latefee/latefee/pkg/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// userRepository implements UserRepository using PostgreSQL.
type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and fills in its generated id.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return apperrors.NewValidationError("name", "name must not be empty")
	}

	query := `INSERT INTO users (name) VALUES ($1) RETURNING id`

	if err := r.db.QueryRow(ctx, query, user.Name).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// List retrieves all users in insertion order.
func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, name FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by id, returning apperrors.ErrNotFound when the
// user does not exist.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, name FROM users WHERE id = $1`

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
