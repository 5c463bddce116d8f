package repositories

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// WalletRepository defines persistence operations for linked Ethereum wallets.
type WalletRepository interface {
	// SaveWallet inserts a new wallet. Returns apperrors.ErrDuplicate if the
	// address already exists.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// FindWalletByAddress retrieves a wallet by checksum address,
	// apperrors.ErrNotFound if absent.
	FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error)

	// FindWalletsByUserID retrieves every wallet bound to a user.
	FindWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error)

	// UpdateWallet persists nonce rotation and user binding changes.
	UpdateWallet(ctx context.Context, wallet domain.Wallet) error

	// DeleteWallet removes a wallet row.
	DeleteWallet(ctx context.Context, walletID string) error

	// SetPrimaryWallet unsets every primary flag for the user and sets the
	// target wallet primary in one transaction.
	SetPrimaryWallet(ctx context.Context, userID, walletID string) error
}
