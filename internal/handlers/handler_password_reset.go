package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
	"github.com/velorashop/velora_backend/internal/middleware"
)

// passwordResetHandler handles the dual-path password recovery endpoints.
type passwordResetHandler struct {
	resetService portssvc.PasswordResetSvcFacade
}

func newPasswordResetHandler(rs portssvc.PasswordResetSvcFacade) *passwordResetHandler {
	return &passwordResetHandler{resetService: rs}
}

// registerPasswordResetRoutes sets up the public password recovery routes.
func registerPasswordResetRoutes(rg *gin.RouterGroup, resetService portssvc.PasswordResetSvcFacade) {
	h := newPasswordResetHandler(resetService)

	// Recovery requests share the login rate limit profile. The logging
	// variant is used here so abuse shows up in the logs.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	auth := rg.Group("/auth")
	{
		auth.POST("/request-password-reset", middleware.RateLimit(ipLimiter), h.requestReset)
		auth.POST("/verify-otp", h.verifyOTP)
		auth.POST("/reset-password/token", h.resetWithToken)
		auth.POST("/reset-password/otp", h.resetWithOTP)
	}
}

// requestReset godoc
// @Summary Request password recovery
// @Description Emails a reset link and a 6-digit code. Responds 200 whether or not the email exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestPasswordResetRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /auth/request-password-reset [post]
func (h *passwordResetHandler) requestReset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, logger, err, "Failed to request password reset")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "If the email exists, recovery instructions have been sent"})
}

// verifyOTP godoc
// @Summary Check a reset code
// @Description Verifies a reset code. A successfully verified code is consumed.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyOTPRequest true "Email and code"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid or expired code"
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-otp [post]
func (h *passwordResetHandler) verifyOTP(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.resetService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondServiceError(c, logger, err, "Failed to verify code")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Code is valid"})
}

// resetWithToken godoc
// @Summary Reset password with a token
// @Description Completes recovery via the emailed reset link.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetWithTokenRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid, expired, or already used token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/reset-password/token [post]
func (h *passwordResetHandler) resetWithToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResetWithTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.resetService.ResetWithToken(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondServiceError(c, logger, err, "Failed to reset password")
		return
	}
	logger.Info("Password reset via token")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}

// resetWithOTP godoc
// @Summary Reset password with a code
// @Description Completes recovery via the emailed 6-digit code.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetWithOTPRequest true "Email, code, and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid or expired code"
// @Failure 500 {object} ErrorResponse
// @Router /auth/reset-password/otp [post]
func (h *passwordResetHandler) resetWithOTP(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResetWithOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.resetService.ResetWithOTP(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		respondServiceError(c, logger, err, "Failed to reset password")
		return
	}
	logger.Info("Password reset via OTP")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}
