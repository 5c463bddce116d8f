package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		TokenRepo:      newPgxTokenRepository(dbPool),
		OTPRepo:        newPgxOTPRepository(dbPool),
		WalletRepo:     newPgxWalletRepository(dbPool),
		PermissionRepo: newPgxPermissionRepository(dbPool),
		ProductRepo:    newPgxProductRepository(dbPool),
	}
}
