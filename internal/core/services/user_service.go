package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
	"github.com/velorashop/velora_backend/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the user service backed by the given repository.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("unknown role %q: %w", req.Role, apperrors.ErrValidation)
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: &hash,
		FullName:     req.FullName,
		Role:         role,
		Status:       domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser collapses every failure mode into ErrUnauthorized so the
// response never reveals whether the email exists or the account is
// passwordless.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if user.Status == domain.StatusBanned {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.HasPassword() {
		// OAuth- or wallet-only account; password login is not available.
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.FullName != nil && *req.FullName != user.FullName {
		user.FullName = *req.FullName
		changed = true
	}
	if req.Avatar != nil && *req.Avatar != user.Avatar {
		user.Avatar = *req.Avatar
		changed = true
	}
	if req.Status != nil && domain.UserStatus(*req.Status) != user.Status {
		status := domain.UserStatus(*req.Status)
		switch status {
		case domain.StatusActive, domain.StatusInactive, domain.StatusBanned:
		default:
			return nil, fmt.Errorf("unknown status %q: %w", *req.Status, apperrors.ErrValidation)
		}
		user.Status = status
		changed = true
	}
	if !changed {
		return user, nil
	}

	user.LastUpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) AssignRole(ctx context.Context, userID string, role domain.Role, customRoleID *string) (*domain.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	user.CustomRoleID = customRoleID
	user.LastUpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) MarkVerified(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return nil
	}
	user.IsVerified = true
	user.LastUpdatedAt = time.Now()
	return s.userRepo.UpdateUser(ctx, *user)
}

// UpsertGoogleUser merges the validated profile into an existing account by
// email, or creates a new active account with no password. The merge is
// idempotent: repeated logins with an unchanged profile write nothing.
func (s *userService) UpsertGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if info.Email == "" || info.ID == "" {
		return nil, fmt.Errorf("google profile missing email or id: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user for google login: %w", err)
	}

	now := time.Now()
	if user == nil || errors.Is(err, apperrors.ErrNotFound) {
		newUser := domain.User{
			UserID:     uuid.NewString(),
			Email:      info.Email,
			FullName:   info.Name,
			Avatar:     info.Picture,
			Role:       domain.RoleUser,
			Status:     domain.StatusActive,
			GoogleID:   &info.ID,
			IsVerified: info.VerifiedEmail,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
			return nil, fmt.Errorf("failed to create google user: %w", err)
		}
		return &newUser, nil
	}

	changed := false
	if user.GoogleID == nil || *user.GoogleID != info.ID {
		user.GoogleID = &info.ID
		changed = true
	}
	if user.Avatar == "" && info.Picture != "" {
		user.Avatar = info.Picture
		changed = true
	}
	if user.FullName == "" && info.Name != "" {
		user.FullName = info.Name
		changed = true
	}
	if changed {
		user.LastUpdatedAt = now
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to merge google profile: %w", err)
		}
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now()); err != nil {
		return err
	}
	return nil
}
