package models

// Permission is the database row model for the permissions catalog table.
type Permission struct {
	PermissionID string `db:"permission_id"`
	Resource     string `db:"resource"`
	Action       string `db:"action"`
	Description  string `db:"description"`
}

// CustomRole is the database row model for the custom_roles table.
type CustomRole struct {
	RoleID      string `db:"role_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}
