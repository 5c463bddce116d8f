package repositories

import (
	"context"
	"time"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// OTPRepository defines persistence operations for password-reset OTPs.
type OTPRepository interface {
	// SaveOTP inserts a new OTP record.
	SaveOTP(ctx context.Context, otp domain.OTP) error

	// FindValidOTP retrieves the unused, unexpired OTP matching email and code,
	// apperrors.ErrNotFound if no such record exists.
	FindValidOTP(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error)

	// MarkOTPUsed consumes a single OTP. A used OTP never validates again.
	MarkOTPUsed(ctx context.Context, otpID string) error

	// MarkEmailOTPsUsed consumes every outstanding OTP for an email, keeping at
	// most one valid code in flight.
	MarkEmailOTPsUsed(ctx context.Context, email string) error
}
