package domain

import "time"

// AuthToken is one row of the token ledger: every issued bearer credential is
// recorded here so it can be revoked. Active is flipped to false on logout and
// must never be flipped back.
type AuthToken struct {
	TokenID   string     `json:"tokenID"`
	UserID    string     `json:"userID"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Token     string     `json:"-"`
	Device    string     `json:"device,omitempty"`
	Kind      TokenKind  `json:"kind"`
	Active    bool       `json:"active"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// TokenKind distinguishes access tokens from short-lived password-reset tokens
// sharing the same ledger.
type TokenKind string

const (
	TokenKindAccess        TokenKind = "access"
	TokenKindPasswordReset TokenKind = "password-reset"
)

// IsExpired checks the optional TTL.
func (t *AuthToken) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return t.ExpiresAt.Before(time.Now())
}
