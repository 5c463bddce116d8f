package services

import "context"

// VerificationSvcFacade stores short-lived email-verification codes in a
// shared TTL store so verification survives restarts and works across server
// instances.
type VerificationSvcFacade interface {
	// IssueCode generates and stores a 6-digit code for the email, replacing
	// any outstanding one.
	IssueCode(ctx context.Context, email string) (string, error)

	// VerifyCode checks and consumes the stored code.
	// apperrors.ErrValidation on mismatch or expiry.
	VerifyCode(ctx context.Context, email, code string) error
}
