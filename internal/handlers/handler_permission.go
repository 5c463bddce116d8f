package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velorashop/velora_backend/internal/core/domain"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
	"github.com/velorashop/velora_backend/internal/middleware"
)

// permissionHandler handles the permission catalog, custom roles, and grants.
type permissionHandler struct {
	permissionService portssvc.PermissionSvcFacade
}

func newPermissionHandler(ps portssvc.PermissionSvcFacade) *permissionHandler {
	return &permissionHandler{permissionService: ps}
}

// registerPermissionRoutes registers catalog, role, and grant routes. Role and
// grant administration is restricted to built-in admins.
func registerPermissionRoutes(rg *gin.RouterGroup, permissionService portssvc.PermissionSvcFacade) {
	h := newPermissionHandler(permissionService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	rg.GET("/permissions", h.listCatalog)

	roles := rg.Group("/roles", adminOnly)
	{
		roles.POST("", h.createRole)
		roles.GET("", h.listRoles)
		roles.GET("/:id", h.getRole)
		roles.PUT("/:id", h.updateRole)
		roles.DELETE("/:id", h.deleteRole)
	}

	users := rg.Group("/users")
	{
		users.GET("/:id/permissions", h.resolveUserPermissions)
		users.POST("/:id/permissions", adminOnly, h.grantPermission)
		users.DELETE("/:id/permissions/:permissionID", adminOnly, h.revokePermission)
	}
}

// listCatalog godoc
// @Summary List the permission catalog
// @Tags permissions
// @Produce json
// @Success 200 {array} dto.PermissionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /permissions [get]
func (h *permissionHandler) listCatalog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	catalog, err := h.permissionService.ListCatalog(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load permission catalog")
		return
	}

	out := make([]dto.PermissionResponse, len(catalog))
	for i, p := range catalog {
		out[i] = dto.ToPermissionResponse(p)
	}
	c.JSON(http.StatusOK, out)
}

// resolveUserPermissions godoc
// @Summary Resolve a user's effective permissions
// @Description Returns the permission set with grant sources. Users can resolve themselves; admins anyone.
// @Tags permissions
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.ResolvedPermissionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permissions [get]
func (h *permissionHandler) resolveUserPermissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetID := c.Param("id")

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if callerID != targetID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	resolved, err := h.permissionService.ResolvePermissions(c.Request.Context(), targetID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve permissions")
		return
	}
	c.JSON(http.StatusOK, dto.ToResolvedPermissionResponses(resolved))
}

// grantPermission godoc
// @Summary Grant a direct permission
// @Description Adds a direct user-to-permission grant. Admin only. Idempotent.
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param grant body dto.GrantPermissionRequest true "Permission to grant"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permissions [post]
func (h *permissionHandler) grantPermission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetID := c.Param("id")

	var req dto.GrantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.permissionService.GrantUserPermission(c.Request.Context(), targetID, req.PermissionID); err != nil {
		respondServiceError(c, logger, err, "Failed to grant permission")
		return
	}

	logger.Info("Permission granted", slog.String("target_id", targetID), slog.String("permission_id", req.PermissionID))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Permission granted"})
}

// revokePermission godoc
// @Summary Revoke a direct permission
// @Tags permissions
// @Produce json
// @Param id path string true "User ID"
// @Param permissionID path string true "Permission ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permissions/{permissionID} [delete]
func (h *permissionHandler) revokePermission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetID := c.Param("id")
	permissionID := c.Param("permissionID")

	if err := h.permissionService.RevokeUserPermission(c.Request.Context(), targetID, permissionID); err != nil {
		respondServiceError(c, logger, err, "Failed to revoke permission")
		return
	}

	logger.Info("Permission revoked", slog.String("target_id", targetID), slog.String("permission_id", permissionID))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Permission revoked"})
}

// createRole godoc
// @Summary Create a custom role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body dto.CreateRoleRequest true "Role definition"
// @Success 201 {object} domain.CustomRole
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Role name already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles [post]
func (h *permissionHandler) createRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	role, err := h.permissionService.CreateRole(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create role")
		return
	}

	logger.Info("Custom role created", slog.String("role_id", role.RoleID))
	c.JSON(http.StatusCreated, role)
}

// listRoles godoc
// @Summary List custom roles
// @Tags roles
// @Produce json
// @Success 200 {array} domain.CustomRole
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles [get]
func (h *permissionHandler) listRoles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	roles, err := h.permissionService.ListRoles(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list roles")
		return
	}
	c.JSON(http.StatusOK, roles)
}

// getRole godoc
// @Summary Get a custom role
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} domain.CustomRole
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *permissionHandler) getRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	role, err := h.permissionService.GetRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve role")
		return
	}
	c.JSON(http.StatusOK, role)
}

// updateRole godoc
// @Summary Update a custom role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param role body dto.UpdateRoleRequest true "Fields to change"
// @Success 200 {object} domain.CustomRole
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{id} [put]
func (h *permissionHandler) updateRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	role, err := h.permissionService.UpdateRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update role")
		return
	}
	c.JSON(http.StatusOK, role)
}

// deleteRole godoc
// @Summary Delete a custom role
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /roles/{id} [delete]
func (h *permissionHandler) deleteRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roleID := c.Param("id")

	if err := h.permissionService.DeleteRole(c.Request.Context(), roleID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete role")
		return
	}

	logger.Info("Custom role deleted", slog.String("role_id", roleID))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Role deleted"})
}
