package services

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
	"github.com/velorashop/velora_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new local account with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// UpdateUser updates an existing user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// AssignRole sets the built-in role and optional custom role of a user.
	AssignRole(ctx context.Context, userID string, role domain.Role, customRoleID *string) (*domain.User, error)

	// MarkVerified flips the email-verified flag after code verification.
	MarkVerified(ctx context.Context, userID string) error

	// UpsertGoogleUser merges a validated Google profile into an existing
	// account by email or creates a fresh active, passwordless one.
	UpsertGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser verifies email+password. Absent user, passwordless
	// account, or hash mismatch all return apperrors.ErrUnauthorized.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
