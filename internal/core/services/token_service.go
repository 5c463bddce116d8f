package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/platform/config"
	"github.com/velorashop/velora_backend/internal/utils"
)

// tokenService implements TokenSvcFacade over the token ledger. Every issued
// credential gets a ledger row; validation requires both a valid signature and
// an active row, so revocation takes effect on the next request.
type tokenService struct {
	cfg       *config.Config
	tokenRepo portsrepo.TokenRepository
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, tokenRepo portsrepo.TokenRepository) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, tokenRepo: tokenRepo}
}

func (s *tokenService) IssueAccessToken(ctx context.Context, user *domain.User, device string) (string, *domain.AuthToken, error) {
	signed, err := utils.GenerateAccessJWT(user, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	entry := domain.AuthToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		Email:     user.Email,
		Role:      user.Role,
		Token:     signed,
		Device:    device,
		Kind:      domain.TokenKindAccess,
		Active:    true,
		IssuedAt:  time.Now(),
		ExpiresAt: &expiresAt,
	}
	if err := s.tokenRepo.SaveToken(ctx, entry); err != nil {
		return "", nil, fmt.Errorf("failed to persist token ledger entry: %w", err)
	}
	return signed, &entry, nil
}

func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*utils.AccessClaims, error) {
	claims, err := utils.ParseAccessJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", errors.Join(apperrors.ErrUnauthorized, err))
	}

	entry, err := s.tokenRepo.FindByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("token not in ledger: %w", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to check token ledger: %w", err)
	}
	if entry.Kind != domain.TokenKindAccess || !entry.Active || entry.IsExpired() {
		return nil, fmt.Errorf("token revoked or expired: %w", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

func (s *tokenService) InvalidateUserTokens(ctx context.Context, userID string) error {
	if err := s.tokenRepo.DeactivateUserTokens(ctx, userID, domain.TokenKindAccess); err != nil {
		return fmt.Errorf("failed to invalidate tokens for user %s: %w", userID, err)
	}
	return nil
}
