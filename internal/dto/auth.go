package dto

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// RegisterResponse confirms a registration.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Device   string `json:"device"`
}

// LoginUser is the minimal user projection returned alongside a token.
type LoginUser struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginResponse is returned from a successful login.
type LoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// VerifyEmailRequest is the payload for POST /auth/verify-email.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// MessageResponse is a generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}
