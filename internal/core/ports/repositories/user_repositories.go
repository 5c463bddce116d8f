package repositories

import (
	"context"
	"time"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate if the email
	// is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID, apperrors.ErrNotFound if absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, apperrors.ErrNotFound if absent.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of non-deleted users.
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// UpdateUser persists profile/identity changes to an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces the stored password hash for a user.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error
}
