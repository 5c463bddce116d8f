package domain

import "time"

// Role is the built-in coarse role enum assigned to every user.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
)

// IsValid reports whether r is one of the built-in roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleStaff, RoleManager, RoleTechnician:
		return true
	}
	return false
}

// UserStatus tracks account lifecycle. Users are never hard-deleted in the
// normal flow; deactivation and bans are status changes.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
	StatusBanned   UserStatus = "banned"
)

// User is the identity record. PasswordHash is nil for accounts created via
// Google or a wallet that never set a password.
type User struct {
	UserID       string     `json:"userID"`
	Email        string     `json:"email"`
	PasswordHash *string    `json:"-"`
	FullName     string     `json:"fullName"`
	Avatar       string     `json:"avatar,omitempty"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	GoogleID     *string    `json:"-"`
	CustomRoleID *string    `json:"customRoleID,omitempty"`
	IsVerified   bool       `json:"isVerified"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// GoogleUserInfo is the validated profile payload extracted from Google's
// userinfo endpoint or ID token. Anything missing Email or ID is rejected at
// the boundary before it reaches domain logic.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
