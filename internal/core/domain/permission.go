package domain

// Permission is one grantable (resource, action) capability tuple from the
// global catalog.
type Permission struct {
	PermissionID string `json:"permissionID"`
	Resource     string `json:"resource"`
	Action       string `json:"action"`
	Description  string `json:"description,omitempty"`
}

// PermissionSource records how a resolved permission reached the user.
type PermissionSource string

const (
	SourceAdmin  PermissionSource = "admin"
	SourceDirect PermissionSource = "direct"
	SourceRole   PermissionSource = "role"
)

// ResolvedPermission is a catalog permission tagged with its grant source.
type ResolvedPermission struct {
	Permission
	Source PermissionSource `json:"source"`
}

// CustomRole is a named bundle of permission references that can be assigned
// to a user alongside the built-in role enum.
type CustomRole struct {
	RoleID      string       `json:"roleID"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
	AuditFields
}
