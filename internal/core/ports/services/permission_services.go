package services

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
	"github.com/velorashop/velora_backend/internal/dto"
)

// PermissionResolverSvc resolves the capability set of a user per request.
type PermissionResolverSvc interface {
	// ResolvePermissions returns the user's effective permissions tagged with
	// their grant source. Built-in admins get the full catalog.
	ResolvePermissions(ctx context.Context, userID string) ([]domain.ResolvedPermission, error)

	// HasPermission reports whether the user holds the (resource, action) tuple.
	HasPermission(ctx context.Context, userID, resource, action string) (bool, error)

	// ListCatalog returns the global permission catalog.
	ListCatalog(ctx context.Context) ([]domain.Permission, error)
}

// RoleAdminSvc manages custom roles and explicit grants.
type RoleAdminSvc interface {
	CreateRole(ctx context.Context, req dto.CreateRoleRequest) (*domain.CustomRole, error)
	GetRole(ctx context.Context, roleID string) (*domain.CustomRole, error)
	ListRoles(ctx context.Context) ([]domain.CustomRole, error)
	UpdateRole(ctx context.Context, roleID string, req dto.UpdateRoleRequest) (*domain.CustomRole, error)
	DeleteRole(ctx context.Context, roleID string) error

	GrantUserPermission(ctx context.Context, userID, permissionID string) error
	RevokeUserPermission(ctx context.Context, userID, permissionID string) error
}

// PermissionSvcFacade combines resolution and role administration.
type PermissionSvcFacade interface {
	PermissionResolverSvc
	RoleAdminSvc
}
