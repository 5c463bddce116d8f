package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velorashop/velora_backend/internal/apperrors"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/utils"
)

const verificationKeyPrefix = "verify:email:"

// verificationService keeps email-verification codes in Redis with a TTL, so
// a code issued by one instance can be redeemed on another and nothing
// survives past its expiry.
type verificationService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerificationService creates the email-verification code store.
func NewVerificationService(client *redis.Client, ttl time.Duration) portssvc.VerificationSvcFacade {
	return &verificationService{client: client, ttl: ttl}
}

func verificationKey(email string) string {
	return verificationKeyPrefix + email
}

func (s *verificationService) IssueCode(ctx context.Context, email string) (string, error) {
	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	// SET overwrites any outstanding code and resets the TTL.
	if err := s.client.Set(ctx, verificationKey(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}
	return code, nil
}

func (s *verificationService) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := s.client.Get(ctx, verificationKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("verification code expired or never issued: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to read verification code: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return fmt.Errorf("verification code mismatch: %w", apperrors.ErrValidation)
	}
	if err := s.client.Del(ctx, verificationKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	return nil
}
