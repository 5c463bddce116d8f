package repositories

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// PermissionRepository defines persistence for the permission catalog, custom
// roles, and the grant tables.
type PermissionRepository interface {
	// FindAllPermissions returns the full permission catalog.
	FindAllPermissions(ctx context.Context) ([]domain.Permission, error)

	// FindDirectPermissions returns permissions granted directly to a user.
	FindDirectPermissions(ctx context.Context, userID string) ([]domain.Permission, error)

	// FindRolePermissions returns permissions attached to a custom role.
	FindRolePermissions(ctx context.Context, roleID string) ([]domain.Permission, error)

	// GrantUserPermission adds a direct user-to-permission grant (idempotent).
	GrantUserPermission(ctx context.Context, userID, permissionID string) error

	// RevokeUserPermission removes a direct grant.
	RevokeUserPermission(ctx context.Context, userID, permissionID string) error

	// SaveRole inserts a custom role. apperrors.ErrDuplicate on name clash.
	SaveRole(ctx context.Context, role domain.CustomRole) error

	// FindRoleByID retrieves a custom role with its permissions attached.
	FindRoleByID(ctx context.Context, roleID string) (*domain.CustomRole, error)

	// FindRoles lists all custom roles (without permission expansion).
	FindRoles(ctx context.Context) ([]domain.CustomRole, error)

	// UpdateRole persists name/description changes.
	UpdateRole(ctx context.Context, role domain.CustomRole) error

	// DeleteRole removes a custom role and its permission attachments.
	DeleteRole(ctx context.Context, roleID string) error

	// SetRolePermissions replaces the permission set of a role transactionally.
	SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error
}
