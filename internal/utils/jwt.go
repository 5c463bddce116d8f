package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// AccessClaims is the JWT payload for access tokens. The custom claims carry
// exactly the identity projection the frontends need; permissions are
// deliberately excluded and resolved fresh per request so tokens never go
// stale on grants.
type AccessClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// ResetClaims is the JWT payload for password-reset tokens. Type must equal
// "password-reset" for the token path of the reset flow to accept it.
type ResetClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// ResetTokenType is the required value of the Type claim on reset tokens.
const ResetTokenType = "password-reset"

// GenerateAccessJWT signs an HS256 access token for the given user.
func GenerateAccessJWT(user *domain.User, secret string, expiry time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   user.UserID,
		Email:    user.Email,
		Role:     string(user.Role),
		FullName: user.FullName,
		Avatar:   user.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// GenerateResetJWT signs a short-lived password-reset token.
func GenerateResetJWT(user *domain.User, secret string, expiry time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := ResetClaims{
		UserID: user.UserID,
		Email:  user.Email,
		Type:   ResetTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return signed, nil
}

// ParseAccessJWT verifies the signature and standard claims of an access token
// and returns its payload.
func ParseAccessJWT(tokenString, secret string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ParseResetJWT verifies a password-reset token, including its Type claim.
func ParseResetJWT(tokenString, secret string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Type != ResetTokenType {
		return nil, errors.New("token is not a password-reset token")
	}
	return claims, nil
}
