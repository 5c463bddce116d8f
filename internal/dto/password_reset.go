package dto

// RequestPasswordResetRequest is the payload for POST /auth/request-password-reset.
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest is the payload for POST /auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// ResetWithTokenRequest is the payload for POST /auth/reset-password/token.
type ResetWithTokenRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetWithOTPRequest is the payload for POST /auth/reset-password/otp.
type ResetWithOTPRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
