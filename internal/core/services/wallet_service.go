package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/utils"
)

// walletService drives the per-address authentication state machine:
// Unregistered -> NonceIssued -> Bound -> Authenticated. The nonce is a
// single-use challenge and is rotated after every successful verification.
type walletService struct {
	walletRepo portsrepo.WalletRepository
	userRepo   portsrepo.UserRepository
	tokenSvc   portssvc.TokenSvcFacade
}

// NewWalletService creates the wallet authentication service.
func NewWalletService(walletRepo portsrepo.WalletRepository, userRepo portsrepo.UserRepository, tokenSvc portssvc.TokenSvcFacade) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		tokenSvc:   tokenSvc,
	}
}

func newNonce() (string, error) {
	return utils.GenerateSecureRandomString(16)
}

func (s *walletService) GetNonce(ctx context.Context, address string) (string, string, error) {
	if !utils.IsEthereumAddress(address) {
		return "", "", fmt.Errorf("invalid ethereum address %q: %w", address, apperrors.ErrValidation)
	}
	checksum := utils.ChecksumAddress(address)

	nonce, err := newNonce()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	wallet, err := s.walletRepo.FindWalletByAddress(ctx, checksum)
	switch {
	case err == nil:
		wallet.Nonce = nonce
		if err := s.walletRepo.UpdateWallet(ctx, *wallet); err != nil {
			return "", "", fmt.Errorf("failed to store nonce: %w", err)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		now := time.Now()
		placeholder := domain.Wallet{
			WalletID: uuid.NewString(),
			Address:  checksum,
			Nonce:    nonce,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := s.walletRepo.SaveWallet(ctx, placeholder); err != nil {
			return "", "", fmt.Errorf("failed to create nonce placeholder: %w", err)
		}
	default:
		return "", "", fmt.Errorf("failed to look up wallet: %w", err)
	}

	return nonce, fmt.Sprintf(domain.NonceMessageTemplate, nonce), nil
}

// verifyNonceSignature recovers the signer of the nonce message and compares
// it to the wallet address case-insensitively.
func verifyNonceSignature(address, nonce, signature string) error {
	message := fmt.Sprintf(domain.NonceMessageTemplate, nonce)
	recovered, err := utils.RecoverPersonalSignAddress(message, signature)
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", errors.Join(apperrors.ErrUnauthorized, err))
	}
	if !utils.SameAddress(recovered, address) {
		return fmt.Errorf("signature does not match address: %w", apperrors.ErrUnauthorized)
	}
	return nil
}

func (s *walletService) Authenticate(ctx context.Context, address, signature, device string) (*domain.WalletAuthResult, error) {
	if !utils.IsEthereumAddress(address) {
		return nil, fmt.Errorf("invalid ethereum address %q: %w", address, apperrors.ErrValidation)
	}
	checksum := utils.ChecksumAddress(address)

	wallet, err := s.walletRepo.FindWalletByAddress(ctx, checksum)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up wallet: %w", err)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		wallet = nil
	}

	// An empty stored nonce skips verification entirely: trust-on-first-use
	// for addresses that never completed the nonce round trip.
	storedNonce := ""
	if wallet != nil {
		storedNonce = wallet.Nonce
	}
	if storedNonce != "" {
		if err := verifyNonceSignature(checksum, storedNonce, signature); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	isNewUser := false
	var user *domain.User

	if wallet == nil || wallet.UserID == nil {
		user, err = s.createWalletUser(ctx, checksum, now)
		if err != nil {
			return nil, err
		}
		isNewUser = true

		if wallet == nil {
			nonce, err := newNonce()
			if err != nil {
				return nil, fmt.Errorf("failed to generate nonce: %w", err)
			}
			wallet = &domain.Wallet{
				WalletID:  uuid.NewString(),
				Address:   checksum,
				UserID:    &user.UserID,
				Nonce:     nonce,
				IsPrimary: true,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			}
			if err := s.walletRepo.SaveWallet(ctx, *wallet); err != nil {
				return nil, fmt.Errorf("failed to create wallet: %w", err)
			}
		} else {
			wallet.UserID = &user.UserID
			wallet.IsPrimary = true
			if err := s.rotateNonce(ctx, wallet); err != nil {
				return nil, err
			}
		}
	} else {
		user, err = s.userRepo.FindUserByID(ctx, *wallet.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load wallet owner: %w", err)
		}
		if err := s.rotateNonce(ctx, wallet); err != nil {
			return nil, err
		}
	}

	token, _, err := s.tokenSvc.IssueAccessToken(ctx, user, device)
	if err != nil {
		return nil, err
	}

	return &domain.WalletAuthResult{
		Token:     token,
		User:      user,
		Wallet:    wallet,
		IssuedAt:  now,
		IsNewUser: isNewUser,
	}, nil
}

// createWalletUser provisions the synthetic account backing a wallet that
// authenticated without an existing user.
func (s *walletService) createWalletUser(ctx context.Context, checksum string, now time.Time) (*domain.User, error) {
	randomPassword, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate wallet user password: %w", err)
	}
	hash, err := utils.HashPassword(randomPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash wallet user password: %w", err)
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        fmt.Sprintf("%s@metamask.user", checksum),
		PasswordHash: &hash,
		FullName:     checksum,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create wallet user: %w", err)
	}
	return &user, nil
}

// rotateNonce replaces the wallet's challenge after a successful
// authentication and persists any pending binding changes with it.
func (s *walletService) rotateNonce(ctx context.Context, wallet *domain.Wallet) error {
	nonce, err := newNonce()
	if err != nil {
		return fmt.Errorf("failed to rotate nonce: %w", err)
	}
	wallet.Nonce = nonce
	if err := s.walletRepo.UpdateWallet(ctx, *wallet); err != nil {
		return fmt.Errorf("failed to persist rotated nonce: %w", err)
	}
	return nil
}

func (s *walletService) LinkWallet(ctx context.Context, userID, address, signature string) (*domain.Wallet, error) {
	if !utils.IsEthereumAddress(address) {
		return nil, fmt.Errorf("invalid ethereum address %q: %w", address, apperrors.ErrValidation)
	}
	checksum := utils.ChecksumAddress(address)

	wallet, err := s.walletRepo.FindWalletByAddress(ctx, checksum)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no challenge issued for %s, request a nonce first: %w", checksum, apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to look up wallet: %w", err)
	}
	if wallet.UserID != nil {
		return nil, fmt.Errorf("wallet %s already linked to an account: %w", checksum, apperrors.ErrDuplicate)
	}
	if wallet.Nonce == "" {
		return nil, fmt.Errorf("no challenge issued for %s, request a nonce first: %w", checksum, apperrors.ErrValidation)
	}
	if err := verifyNonceSignature(checksum, wallet.Nonce, signature); err != nil {
		return nil, err
	}

	existing, err := s.walletRepo.FindWalletsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	hasPrimary := false
	for _, w := range existing {
		if w.IsPrimary {
			hasPrimary = true
			break
		}
	}

	wallet.UserID = &userID
	wallet.IsPrimary = !hasPrimary
	if err := s.rotateNonce(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) RemoveWallet(ctx context.Context, userID, address string) error {
	if !utils.IsEthereumAddress(address) {
		return fmt.Errorf("invalid ethereum address %q: %w", address, apperrors.ErrValidation)
	}
	checksum := utils.ChecksumAddress(address)

	wallet, err := s.walletRepo.FindWalletByAddress(ctx, checksum)
	if err != nil {
		return err
	}
	if wallet.UserID == nil || *wallet.UserID != userID {
		return fmt.Errorf("wallet not linked to this account: %w", apperrors.ErrNotFound)
	}

	wallets, err := s.walletRepo.FindWalletsByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list wallets: %w", err)
	}
	if wallet.IsPrimary && len(wallets) == 1 {
		return fmt.Errorf("cannot remove the only primary wallet: %w", apperrors.ErrValidation)
	}
	return s.walletRepo.DeleteWallet(ctx, wallet.WalletID)
}

func (s *walletService) SetPrimaryWallet(ctx context.Context, userID, address string) error {
	if !utils.IsEthereumAddress(address) {
		return fmt.Errorf("invalid ethereum address %q: %w", address, apperrors.ErrValidation)
	}
	checksum := utils.ChecksumAddress(address)

	wallet, err := s.walletRepo.FindWalletByAddress(ctx, checksum)
	if err != nil {
		return err
	}
	if wallet.UserID == nil || *wallet.UserID != userID {
		return fmt.Errorf("wallet not linked to this account: %w", apperrors.ErrNotFound)
	}
	return s.walletRepo.SetPrimaryWallet(ctx, userID, wallet.WalletID)
}

func (s *walletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.FindWalletsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}
