package services

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its dependencies. Order
// matters only for the token service, which the user-facing auth flows reuse.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, redisClient *redis.Client, amqpConn *amqp.Connection) (*portssvc.ServiceContainer, error) {
	mailer, err := NewMailerService(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("failed to set up mailer: %w", err)
	}

	tokenSvc := NewTokenService(cfg, repos.TokenRepo)

	return &portssvc.ServiceContainer{
		User:               NewUserService(repos.UserRepo),
		TokenService:       tokenSvc,
		Wallet:             NewWalletService(repos.WalletRepo, repos.UserRepo, tokenSvc),
		PasswordReset:      NewPasswordResetService(cfg, repos.UserRepo, repos.TokenRepo, repos.OTPRepo, mailer),
		Permission:         NewPermissionService(repos.PermissionRepo, repos.UserRepo),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
		Verification:       NewVerificationService(redisClient, cfg.OTPExpiryDuration),
		Mailer:             mailer,
		Product:            NewProductService(repos.ProductRepo),
	}, nil
}
