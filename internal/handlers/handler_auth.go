package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
	"github.com/velorashop/velora_backend/internal/middleware"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	verification portssvc.VerificationSvcFacade
	mailer       portssvc.MailerSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, vs portssvc.VerificationSvcFacade, ms portssvc.MailerSvc) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		verification: vs,
		mailer:       ms,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.TokenService, services.Verification, services.Mailer)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/verify-email", h.VerifyEmail)
	}
}

// registerProtectedAuthRoutes sets up the auth routes that require a valid token.
func registerProtectedAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.TokenService, services.Verification, services.Mailer)

	auth := rg.Group("/auth")
	{
		auth.POST("/logout", h.Logout)
		// Token validation is ledger-backed and logout already revokes
		// user-wide, so logout-all is the same operation under its own path.
		auth.POST("/logout-all", h.Logout)
		auth.GET("/me", h.Me)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account and emails a verification code.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		respondServiceError(c, logger, err, "Failed to register user")
		return
	}

	// Verification is best effort; the account exists either way and the code
	// can be re-requested.
	code, err := h.verification.IssueCode(c.Request.Context(), newUser.Email)
	if err != nil {
		logger.Error("Failed to issue verification code", slog.String("error", err.Error()), slog.String("user_id", newUser.UserID))
	} else {
		job := domain.EmailJob{
			To:       newUser.Email,
			Template: domain.EmailTemplateVerifyAccount,
			Params:   map[string]string{"code": code},
		}
		if err := h.mailer.Send(c.Request.Context(), job); err != nil {
			logger.Error("Failed to enqueue verification email", slog.String("error", err.Error()), slog.String("user_id", newUser.UserID))
		}
	}

	logger.Info("User registered", slog.String("user_id", newUser.UserID))
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Success: true,
		Message: "Registration successful. Check your email for a verification code.",
		Email:   newUser.Email,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		respondServiceError(c, logger, err, "Failed to log in")
		return
	}

	token, _, err := h.tokenService.IssueAccessToken(c.Request.Context(), user, req.Device)
	if err != nil {
		logger.Error("Failed to issue access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Token:   token,
		User:    dto.ToLoginUser(user),
	})
}

// VerifyEmail godoc
// @Summary Verify email address
// @Description Consumes the emailed verification code and marks the account verified.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Email and code"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid or expired code"
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.verification.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
		respondServiceError(c, logger, err, "Failed to verify email")
		return
	}

	user, err := h.userService.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to verify email")
		return
	}
	if err := h.userService.MarkVerified(c.Request.Context(), user.UserID); err != nil {
		respondServiceError(c, logger, err, "Failed to verify email")
		return
	}

	logger.Info("Email verified", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified"})
}

// Logout godoc
// @Summary Log out
// @Description Deactivates every access token issued to the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tokenService.InvalidateUserTokens(c.Request.Context(), userID); err != nil {
		logger.Error("Failed to invalidate tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log out"})
		return
	}

	logger.Info("User logged out")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
