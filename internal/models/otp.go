package models

import "time"

// OTP is the database row model for the password_reset_otps table.
type OTP struct {
	OTPID     string    `db:"otp_id"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
	CreatedAt time.Time `db:"created_at"`
}
