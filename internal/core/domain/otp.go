package domain

import "time"

// OTP is a single-use 6-digit password-reset code delivered by email.
type OTP struct {
	OTPID     string    `json:"otpID"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsUsed    bool      `json:"isUsed"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsValid reports whether the OTP can still satisfy a verification: unused and
// unexpired. A used OTP never validates again.
func (o *OTP) IsValid(now time.Time) bool {
	return !o.IsUsed && now.Before(o.ExpiresAt)
}
