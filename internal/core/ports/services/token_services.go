package services

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
	"github.com/velorashop/velora_backend/internal/utils"
)

// TokenSvcFacade handles bearer credential issuance, per-request validation
// against the ledger, and revocation.
type TokenSvcFacade interface {
	// IssueAccessToken signs an access JWT for the user and appends an active
	// ledger entry. Signing or persistence failure is fatal for the request.
	IssueAccessToken(ctx context.Context, user *domain.User, device string) (string, *domain.AuthToken, error)

	// ValidateAccessToken verifies the JWT signature and claims, then requires
	// an active access-kind ledger row for the exact token string.
	ValidateAccessToken(ctx context.Context, tokenString string) (*utils.AccessClaims, error)

	// InvalidateUserTokens deactivates every access token for the user. This is
	// the user-wide logout; there is no per-device variant.
	InvalidateUserTokens(ctx context.Context, userID string) error
}
