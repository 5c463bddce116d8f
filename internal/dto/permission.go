package dto

import "github.com/velorashop/velora_backend/internal/core/domain"

// CreateRoleRequest creates a custom role with an optional permission set.
type CreateRoleRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permissionIDs"`
}

// UpdateRoleRequest updates role metadata and/or replaces its permission set.
type UpdateRoleRequest struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	PermissionIDs *[]string `json:"permissionIDs,omitempty"`
}

// GrantPermissionRequest grants a direct permission to a user.
type GrantPermissionRequest struct {
	PermissionID string `json:"permissionID" binding:"required"`
}

// PermissionResponse is the API projection of a catalog permission.
type PermissionResponse struct {
	PermissionID string `json:"permissionID"`
	Resource     string `json:"resource"`
	Action       string `json:"action"`
	Description  string `json:"description,omitempty"`
}

// ResolvedPermissionResponse tags a permission with its grant source.
type ResolvedPermissionResponse struct {
	PermissionResponse
	Source string `json:"source"`
}

// ToPermissionResponse maps a catalog permission.
func ToPermissionResponse(p domain.Permission) PermissionResponse {
	return PermissionResponse{
		PermissionID: p.PermissionID,
		Resource:     p.Resource,
		Action:       p.Action,
		Description:  p.Description,
	}
}

// ToResolvedPermissionResponses maps a resolved permission set.
func ToResolvedPermissionResponses(ps []domain.ResolvedPermission) []ResolvedPermissionResponse {
	out := make([]ResolvedPermissionResponse, len(ps))
	for i, p := range ps {
		out[i] = ResolvedPermissionResponse{
			PermissionResponse: ToPermissionResponse(p.Permission),
			Source:             string(p.Source),
		}
	}
	return out
}
