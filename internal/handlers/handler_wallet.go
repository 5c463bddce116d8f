package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
	"github.com/velorashop/velora_backend/internal/middleware"
)

// walletHandler handles MetaMask wallet authentication and wallet management.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletAuthRoutes sets up the public wallet authentication routes.
func registerWalletAuthRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	// Nonce issuance writes a row per unknown address, so it gets the same
	// per-IP limit as login.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	metamask := rg.Group("/auth/metamask")
	{
		metamask.POST("/nonce", limitMiddleware, h.getNonce)
		metamask.POST("/authenticate", h.authenticate)
	}
}

// registerWalletRoutes sets up the authenticated wallet management routes.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.GET("", h.listWallets)
		wallets.POST("/link", h.linkWallet)
		wallets.DELETE("/:address", h.removeWallet)
		wallets.PUT("/:address/primary", h.setPrimaryWallet)
	}
}

// getNonce godoc
// @Summary Request a signing challenge
// @Description Issues a fresh nonce for the wallet address to sign.
// @Tags wallet
// @Accept json
// @Produce json
// @Param nonce body dto.NonceRequest true "Wallet address"
// @Success 200 {object} dto.NonceResponse
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /auth/metamask/nonce [post]
func (h *walletHandler) getNonce(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	nonce, message, err := h.walletService.GetNonce(c.Request.Context(), req.Address)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to issue nonce")
		return
	}
	c.JSON(http.StatusOK, dto.NonceResponse{
		Success: true,
		Data:    dto.NonceData{Nonce: nonce, Message: message},
	})
}

// authenticate godoc
// @Summary Authenticate with a wallet signature
// @Description Verifies the signed nonce, creating an account on first authentication.
// @Tags wallet
// @Accept json
// @Produce json
// @Param auth body dto.WalletAuthRequest true "Address and signature"
// @Success 200 {object} dto.WalletAuthResponse
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 401 {object} ErrorResponse "Signature rejected"
// @Failure 500 {object} ErrorResponse
// @Router /auth/metamask/authenticate [post]
func (h *walletHandler) authenticate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WalletAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.walletService.Authenticate(c.Request.Context(), req.Address, req.Signature, req.Device)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to authenticate wallet")
		return
	}

	status := http.StatusOK
	if result.IsNewUser {
		status = http.StatusCreated
	}
	logger.Info("Wallet authenticated", slog.String("user_id", result.User.UserID), slog.Bool("new_user", result.IsNewUser))
	c.JSON(status, dto.WalletAuthResponse{
		Success: true,
		Data: dto.WalletAuthData{
			Token:  result.Token,
			User:   dto.ToLoginUser(result.User),
			Wallet: dto.ToWalletResponse(result.Wallet),
		},
	})
}

// listWallets godoc
// @Summary List linked wallets
// @Tags wallet
// @Produce json
// @Success 200 {array} dto.WalletResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	wallets, err := h.walletService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list wallets")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponses(wallets))
}

// linkWallet godoc
// @Summary Link a wallet to the authenticated account
// @Description Verifies the signed nonce and binds the wallet to the caller.
// @Tags wallet
// @Accept json
// @Produce json
// @Param link body dto.LinkWalletRequest true "Address and signature"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} ErrorResponse "Invalid address or no challenge outstanding"
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Wallet already linked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/link [post]
func (h *walletHandler) linkWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.LinkWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	wallet, err := h.walletService.LinkWallet(c.Request.Context(), userID, req.Address, req.Signature)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to link wallet")
		return
	}

	logger.Info("Wallet linked", slog.String("wallet_id", wallet.WalletID))
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// removeWallet godoc
// @Summary Unlink a wallet
// @Tags wallet
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Cannot remove only primary wallet"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Wallet not linked to this account"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/{address} [delete]
func (h *walletHandler) removeWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.walletService.RemoveWallet(c.Request.Context(), userID, c.Param("address")); err != nil {
		respondServiceError(c, logger, err, "Failed to remove wallet")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Wallet removed"})
}

// setPrimaryWallet godoc
// @Summary Mark a wallet as primary
// @Tags wallet
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Wallet not linked to this account"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/{address}/primary [put]
func (h *walletHandler) setPrimaryWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.walletService.SetPrimaryWallet(c.Request.Context(), userID, c.Param("address")); err != nil {
		respondServiceError(c, logger, err, "Failed to set primary wallet")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Primary wallet updated"})
}
