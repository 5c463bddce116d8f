package models

import "time"

// User is the database row model for the users table.
type User struct {
	UserID       string  `db:"user_id"`
	Email        string  `db:"email"`
	PasswordHash *string `db:"password_hash"`
	FullName     string  `db:"full_name"`
	Avatar       string  `db:"avatar"`
	Role         string  `db:"role"`
	Status       string  `db:"status"`
	GoogleID     *string `db:"google_id"`
	CustomRoleID *string `db:"custom_role_id"`
	IsVerified   bool    `db:"is_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
