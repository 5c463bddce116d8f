package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
)

// permissionService resolves effective permissions per request. Nothing about
// grants is cached or embedded in tokens, so a revocation is effective on the
// very next call.
type permissionService struct {
	permRepo portsrepo.PermissionRepository
	userRepo portsrepo.UserRepository
}

// NewPermissionService creates the permission resolution and role admin service.
func NewPermissionService(permRepo portsrepo.PermissionRepository, userRepo portsrepo.UserRepository) portssvc.PermissionSvcFacade {
	return &permissionService{permRepo: permRepo, userRepo: userRepo}
}

func (s *permissionService) ResolvePermissions(ctx context.Context, userID string) ([]domain.ResolvedPermission, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Built-in admins hold the entire catalog unconditionally.
	if user.Role == domain.RoleAdmin {
		catalog, err := s.permRepo.FindAllPermissions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load permission catalog: %w", err)
		}
		resolved := make([]domain.ResolvedPermission, len(catalog))
		for i, p := range catalog {
			resolved[i] = domain.ResolvedPermission{Permission: p, Source: domain.SourceAdmin}
		}
		return resolved, nil
	}

	direct, err := s.permRepo.FindDirectPermissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load direct permissions: %w", err)
	}

	var rolePerms []domain.Permission
	if user.CustomRoleID != nil {
		rolePerms, err = s.permRepo.FindRolePermissions(ctx, *user.CustomRoleID)
		if err != nil {
			return nil, fmt.Errorf("failed to load role permissions: %w", err)
		}
	}

	// Union the two grant paths. Direct grants win on overlap.
	resolved := make([]domain.ResolvedPermission, 0, len(direct)+len(rolePerms))
	seen := make(map[string]struct{}, len(direct))
	for _, p := range direct {
		resolved = append(resolved, domain.ResolvedPermission{Permission: p, Source: domain.SourceDirect})
		seen[p.PermissionID] = struct{}{}
	}
	for _, p := range rolePerms {
		if _, ok := seen[p.PermissionID]; ok {
			continue
		}
		resolved = append(resolved, domain.ResolvedPermission{Permission: p, Source: domain.SourceRole})
	}
	return resolved, nil
}

func (s *permissionService) HasPermission(ctx context.Context, userID, resource, action string) (bool, error) {
	resolved, err := s.ResolvePermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, p := range resolved {
		if p.Resource == resource && p.Action == action {
			return true, nil
		}
	}
	return false, nil
}

func (s *permissionService) ListCatalog(ctx context.Context) ([]domain.Permission, error) {
	catalog, err := s.permRepo.FindAllPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load permission catalog: %w", err)
	}
	return catalog, nil
}

func (s *permissionService) CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*domain.CustomRole, error) {
	now := time.Now()
	role := domain.CustomRole{
		RoleID:      uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.permRepo.SaveRole(ctx, role); err != nil {
		return nil, err
	}
	if len(req.PermissionIDs) > 0 {
		if err := s.permRepo.SetRolePermissions(ctx, role.RoleID, req.PermissionIDs); err != nil {
			return nil, fmt.Errorf("failed to attach role permissions: %w", err)
		}
	}
	return s.permRepo.FindRoleByID(ctx, role.RoleID)
}

func (s *permissionService) GetRole(ctx context.Context, roleID string) (*domain.CustomRole, error) {
	return s.permRepo.FindRoleByID(ctx, roleID)
}

func (s *permissionService) ListRoles(ctx context.Context) ([]domain.CustomRole, error) {
	roles, err := s.permRepo.FindRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *permissionService) UpdateRole(ctx context.Context, roleID string, req dto.UpdateRoleRequest) (*domain.CustomRole, error) {
	role, err := s.permRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != role.Name {
		role.Name = *req.Name
		changed = true
	}
	if req.Description != nil && *req.Description != role.Description {
		role.Description = *req.Description
		changed = true
	}
	if changed {
		role.LastUpdatedAt = time.Now()
		if err := s.permRepo.UpdateRole(ctx, *role); err != nil {
			return nil, err
		}
	}
	if req.PermissionIDs != nil {
		if err := s.permRepo.SetRolePermissions(ctx, roleID, *req.PermissionIDs); err != nil {
			return nil, fmt.Errorf("failed to replace role permissions: %w", err)
		}
	}
	return s.permRepo.FindRoleByID(ctx, roleID)
}

func (s *permissionService) DeleteRole(ctx context.Context, roleID string) error {
	return s.permRepo.DeleteRole(ctx, roleID)
}

func (s *permissionService) GrantUserPermission(ctx context.Context, userID, permissionID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	return s.permRepo.GrantUserPermission(ctx, userID, permissionID)
}

func (s *permissionService) RevokeUserPermission(ctx context.Context, userID, permissionID string) error {
	return s.permRepo.RevokeUserPermission(ctx, userID, permissionID)
}
