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

// passwordResetService issues both recovery credentials together and retires
// both when either path completes, so a finished reset leaves nothing usable
// behind.
type passwordResetService struct {
	cfg       *config.Config
	userRepo  portsrepo.UserRepository
	tokenRepo portsrepo.TokenRepository
	otpRepo   portsrepo.OTPRepository
	mailer    portssvc.MailerSvc
}

// NewPasswordResetService creates the password recovery service.
func NewPasswordResetService(cfg *config.Config, userRepo portsrepo.UserRepository, tokenRepo portsrepo.TokenRepository, otpRepo portsrepo.OTPRepository, mailer portssvc.MailerSvc) portssvc.PasswordResetSvcFacade {
	return &passwordResetService{
		cfg:       cfg,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		otpRepo:   otpRepo,
		mailer:    mailer,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown emails are accepted silently so the endpoint cannot be
			// used to enumerate accounts.
			return nil
		}
		return fmt.Errorf("failed to look up user for reset: %w", err)
	}

	// Only the freshest pair of credentials may be outstanding.
	if err := s.tokenRepo.DeactivateUserTokens(ctx, user.UserID, domain.TokenKindPasswordReset); err != nil {
		return fmt.Errorf("failed to retire previous reset tokens: %w", err)
	}
	if err := s.otpRepo.MarkEmailOTPsUsed(ctx, email); err != nil {
		return fmt.Errorf("failed to retire previous reset codes: %w", err)
	}

	now := time.Now()

	resetToken, err := utils.GenerateResetJWT(user, s.cfg.JWTSecret, s.cfg.ResetTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	tokenExpiresAt := now.Add(s.cfg.ResetTokenExpiryDuration)
	entry := domain.AuthToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		Email:     user.Email,
		Role:      user.Role,
		Token:     resetToken,
		Kind:      domain.TokenKindPasswordReset,
		Active:    true,
		IssuedAt:  now,
		ExpiresAt: &tokenExpiresAt,
	}
	if err := s.tokenRepo.SaveToken(ctx, entry); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	otp := domain.OTP{
		OTPID:     uuid.NewString(),
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.cfg.OTPExpiryDuration),
		CreatedAt: now,
	}
	if err := s.otpRepo.SaveOTP(ctx, otp); err != nil {
		return fmt.Errorf("failed to persist reset code: %w", err)
	}

	job := domain.EmailJob{
		To:       email,
		Template: domain.EmailTemplatePasswordReset,
		Params: map[string]string{
			"resetToken": resetToken,
			"otp":        code,
			"resetURL":   fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendBaseURL, resetToken),
		},
	}
	if err := s.mailer.Send(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue reset email: %w", err)
	}
	return nil
}

func (s *passwordResetService) VerifyOTP(ctx context.Context, email, code string) error {
	otp, err := s.otpRepo.FindValidOTP(ctx, email, code, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("invalid or expired code: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to check reset code: %w", err)
	}
	// A code is single-use: verifying it consumes it, same as completing a
	// reset with it.
	if err := s.otpRepo.MarkOTPUsed(ctx, otp.OTPID); err != nil {
		return fmt.Errorf("failed to consume reset code: %w", err)
	}
	return nil
}

func (s *passwordResetService) ResetWithToken(ctx context.Context, token, newPassword string) error {
	claims, err := utils.ParseResetJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("invalid reset token: %w", errors.Join(apperrors.ErrUnauthorized, err))
	}

	entry, err := s.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("reset token not in ledger: %w", apperrors.ErrUnauthorized)
		}
		return fmt.Errorf("failed to check token ledger: %w", err)
	}
	if entry.Kind != domain.TokenKindPasswordReset || !entry.Active || entry.IsExpired() {
		return fmt.Errorf("reset token revoked or expired: %w", apperrors.ErrUnauthorized)
	}

	if err := s.applyNewPassword(ctx, claims.UserID, newPassword); err != nil {
		return err
	}
	return s.retireCredentials(ctx, claims.UserID, claims.Email)
}

func (s *passwordResetService) ResetWithOTP(ctx context.Context, email, code, newPassword string) error {
	if _, err := s.otpRepo.FindValidOTP(ctx, email, code, time.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("invalid or expired code: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to check reset code: %w", err)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("invalid or expired code: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to look up user for reset: %w", err)
	}

	if err := s.applyNewPassword(ctx, user.UserID, newPassword); err != nil {
		return err
	}
	return s.retireCredentials(ctx, user.UserID, email)
}

func (s *passwordResetService) applyNewPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// retireCredentials removes both outstanding recovery credentials. Whichever
// path completed, the other one must stop working.
func (s *passwordResetService) retireCredentials(ctx context.Context, userID, email string) error {
	if err := s.tokenRepo.DeactivateUserTokens(ctx, userID, domain.TokenKindPasswordReset); err != nil {
		return fmt.Errorf("failed to retire reset tokens: %w", err)
	}
	if err := s.otpRepo.MarkEmailOTPsUsed(ctx, email); err != nil {
		return fmt.Errorf("failed to retire reset codes: %w", err)
	}
	return nil
}
