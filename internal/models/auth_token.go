package models

import "time"

// AuthToken is the database row model for the auth_tokens ledger table.
type AuthToken struct {
	TokenID   string     `db:"token_id"`
	UserID    string     `db:"user_id"`
	Email     string     `db:"email"`
	Role      string     `db:"role"`
	Token     string     `db:"token"`
	Device    string     `db:"device"`
	Kind      string     `db:"kind"`
	Active    bool       `db:"active"`
	IssuedAt  time.Time  `db:"issued_at"`
	ExpiresAt *time.Time `db:"expires_at"`
}
