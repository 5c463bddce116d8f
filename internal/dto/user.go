package dto

import (
	"time"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// UpdateUserRequest carries optional profile changes; nil fields are left
// untouched.
type UpdateUserRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// AssignRoleRequest sets a user's built-in role and optionally a custom role.
type AssignRoleRequest struct {
	Role         string  `json:"role" binding:"required"`
	CustomRoleID *string `json:"customRoleID,omitempty"`
}

// UserResponse is the full user projection returned by the user API.
type UserResponse struct {
	UserID       string    `json:"userID"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CustomRoleID *string   `json:"customRoleID,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse maps a domain user to its API projection.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Email:        u.Email,
		FullName:     u.FullName,
		Avatar:       u.Avatar,
		Role:         string(u.Role),
		Status:       string(u.Status),
		CustomRoleID: u.CustomRoleID,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
	}
}

// ToLoginUser maps a domain user to the minimal login projection.
func ToLoginUser(u *domain.User) LoginUser {
	return LoginUser{
		Email:    u.Email,
		Role:     string(u.Role),
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
