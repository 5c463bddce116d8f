package services

import "context"

// PasswordResetSvcFacade implements the dual-path password recovery flow: a
// short-lived signed reset token and a 6-digit OTP, created together and
// either sufficient to complete the reset.
type PasswordResetSvcFacade interface {
	// RequestReset issues both recovery credentials for the email and
	// publishes one delivery job. Unknown emails are silently accepted to
	// avoid user enumeration.
	RequestReset(ctx context.Context, email string) error

	// VerifyOTP checks an OTP and marks it used on success. A verified code
	// cannot be presented again.
	VerifyOTP(ctx context.Context, email, code string) error

	// ResetWithToken completes the reset via the signed token path and retires
	// both outstanding credentials.
	ResetWithToken(ctx context.Context, token, newPassword string) error

	// ResetWithOTP completes the reset via the OTP path and retires both
	// outstanding credentials.
	ResetWithOTP(ctx context.Context, email, code, newPassword string) error
}
