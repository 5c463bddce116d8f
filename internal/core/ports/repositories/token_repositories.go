package repositories

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// TokenRepository defines persistence operations for the token ledger.
// Ledger rows are append-only apart from the active flag, which only ever
// transitions true -> false.
type TokenRepository interface {
	// SaveToken appends a ledger entry for a freshly issued token.
	SaveToken(ctx context.Context, token domain.AuthToken) error

	// FindByToken retrieves a ledger entry by its exact token string,
	// apperrors.ErrNotFound if absent.
	FindByToken(ctx context.Context, tokenString string) (*domain.AuthToken, error)

	// DeactivateToken flips a single ledger entry to inactive.
	DeactivateToken(ctx context.Context, tokenID string) error

	// DeactivateUserTokens flips every entry of the given kind for a user to
	// inactive. A single statement, so the ledger-wide logout is atomic.
	DeactivateUserTokens(ctx context.Context, userID string, kind domain.TokenKind) error
}
