package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	"github.com/velorashop/velora_backend/internal/models"
)

type PgxPermissionRepository struct {
	db *pgxpool.Pool
}

func newPgxPermissionRepository(db *pgxpool.Pool) portsrepo.PermissionRepository {
	return &PgxPermissionRepository{db: db}
}

var _ portsrepo.PermissionRepository = (*PgxPermissionRepository)(nil)

func toDomainPermission(m models.Permission) domain.Permission {
	return domain.Permission{
		PermissionID: m.PermissionID,
		Resource:     m.Resource,
		Action:       m.Action,
		Description:  m.Description,
	}
}

func (r *PgxPermissionRepository) queryPermissions(ctx context.Context, query string, args ...any) ([]domain.Permission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer rows.Close()

	perms := []domain.Permission{}
	for rows.Next() {
		var m models.Permission
		if err := rows.Scan(&m.PermissionID, &m.Resource, &m.Action, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan permission row: %w", err)
		}
		perms = append(perms, toDomainPermission(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating permission rows: %w", rows.Err())
	}
	return perms, nil
}

func (r *PgxPermissionRepository) FindAllPermissions(ctx context.Context) ([]domain.Permission, error) {
	return r.queryPermissions(ctx, `
        SELECT permission_id, resource, action, description
        FROM permissions
        ORDER BY resource, action;
    `)
}

func (r *PgxPermissionRepository) FindDirectPermissions(ctx context.Context, userID string) ([]domain.Permission, error) {
	return r.queryPermissions(ctx, `
        SELECT p.permission_id, p.resource, p.action, p.description
        FROM permissions p
        JOIN user_permissions up ON up.permission_id = p.permission_id
        WHERE up.user_id = $1
        ORDER BY p.resource, p.action;
    `, userID)
}

func (r *PgxPermissionRepository) FindRolePermissions(ctx context.Context, roleID string) ([]domain.Permission, error) {
	return r.queryPermissions(ctx, `
        SELECT p.permission_id, p.resource, p.action, p.description
        FROM permissions p
        JOIN role_permissions rp ON rp.permission_id = p.permission_id
        WHERE rp.role_id = $1
        ORDER BY p.resource, p.action;
    `, roleID)
}

func (r *PgxPermissionRepository) GrantUserPermission(ctx context.Context, userID, permissionID string) error {
	query := `
        INSERT INTO user_permissions (user_id, permission_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, permission_id) DO NOTHING;
    `
	if _, err := r.db.Exec(ctx, query, userID, permissionID); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

func (r *PgxPermissionRepository) RevokeUserPermission(ctx context.Context, userID, permissionID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1 AND permission_id = $2;`, userID, permissionID)
	if err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("grant not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPermissionRepository) SaveRole(ctx context.Context, role domain.CustomRole) error {
	query := `
        INSERT INTO custom_roles (role_id, name, description, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.db.Exec(ctx, query, role.RoleID, role.Name, role.Description, role.CreatedAt, role.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("role %s already exists: %w", role.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save role: %w", err)
	}
	return nil
}

func (r *PgxPermissionRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.CustomRole, error) {
	query := `SELECT role_id, name, description, created_at, last_updated_at FROM custom_roles WHERE role_id = $1;`
	var m models.CustomRole
	err := r.db.QueryRow(ctx, query, roleID).Scan(&m.RoleID, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	perms, err := r.FindRolePermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}

	role := domain.CustomRole{
		RoleID:      m.RoleID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: perms,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	return &role, nil
}

func (r *PgxPermissionRepository) FindRoles(ctx context.Context) ([]domain.CustomRole, error) {
	rows, err := r.db.Query(ctx, `SELECT role_id, name, description, created_at, last_updated_at FROM custom_roles ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.CustomRole{}
	for rows.Next() {
		var m models.CustomRole
		if err := rows.Scan(&m.RoleID, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, domain.CustomRole{
			RoleID:      m.RoleID,
			Name:        m.Name,
			Description: m.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				LastUpdatedAt: m.LastUpdatedAt,
			},
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", rows.Err())
	}
	return roles, nil
}

func (r *PgxPermissionRepository) UpdateRole(ctx context.Context, role domain.CustomRole) error {
	query := `UPDATE custom_roles SET name = $1, description = $2, last_updated_at = $3 WHERE role_id = $4;`
	cmdTag, err := r.db.Exec(ctx, query, role.Name, role.Description, time.Now(), role.RoleID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("role not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPermissionRepository) DeleteRole(ctx context.Context, roleID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1;`, roleID); err != nil {
		return fmt.Errorf("failed to delete role permissions: %w", err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM custom_roles WHERE role_id = $1;`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("role not found: %w", apperrors.ErrNotFound)
	}
	return tx.Commit(ctx)
}

func (r *PgxPermissionRepository) SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1;`, roleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}
	for _, pid := range permissionIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2);`, roleID, pid); err != nil {
			return fmt.Errorf("failed to attach permission %s: %w", pid, err)
		}
	}
	return tx.Commit(ctx)
}
