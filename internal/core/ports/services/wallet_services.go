package services

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// WalletSvcFacade implements the MetaMask authentication state machine:
// Unregistered -> NonceIssued -> Bound -> Authenticated.
type WalletSvcFacade interface {
	// GetNonce issues (or rotates) the signing challenge for an address,
	// creating a placeholder wallet when the address is unknown. Returns the
	// nonce and the full message to sign.
	GetNonce(ctx context.Context, address string) (nonce string, message string, err error)

	// Authenticate verifies a personal_sign signature over the stored nonce
	// message, creating and binding a user on first success, rotating the
	// nonce, and minting an access token.
	Authenticate(ctx context.Context, address, signature, device string) (*domain.WalletAuthResult, error)

	// LinkWallet binds an additional address to an existing user after
	// verifying a signature over the stored nonce from a prior GetNonce call.
	LinkWallet(ctx context.Context, userID, address, signature string) (*domain.Wallet, error)

	// RemoveWallet deletes a user's wallet. The last remaining primary wallet
	// cannot be removed.
	RemoveWallet(ctx context.Context, userID, address string) error

	// SetPrimaryWallet makes the given address the user's only primary wallet.
	// Idempotent.
	SetPrimaryWallet(ctx context.Context, userID, address string) error

	// ListWallets returns every wallet bound to the user.
	ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
}
