package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	"github.com/velorashop/velora_backend/internal/models"
)

type PgxWalletRepository struct {
	db *pgxpool.Pool
}

func newPgxWalletRepository(db *pgxpool.Pool) portsrepo.WalletRepository {
	return &PgxWalletRepository{db: db}
}

var _ portsrepo.WalletRepository = (*PgxWalletRepository)(nil)

func toDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:  m.WalletID,
		Address:   m.Address,
		UserID:    m.UserID,
		Nonce:     m.Nonce,
		IsPrimary: m.IsPrimary,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const walletColumns = `wallet_id, address, user_id, nonce, is_primary, created_at, last_updated_at`

func scanWallet(row pgx.Row) (*models.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.WalletID,
		&m.Address,
		&m.UserID,
		&m.Nonce,
		&m.IsPrimary,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
        INSERT INTO wallets (wallet_id, address, user_id, nonce, is_primary, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		wallet.WalletID,
		wallet.Address,
		wallet.UserID,
		wallet.Nonce,
		wallet.IsPrimary,
		wallet.CreatedAt,
		wallet.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("wallet %s already exists: %w", wallet.Address, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE address = $1;`
	m, err := scanWallet(r.db.QueryRow(ctx, query, address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by address: %w", err)
	}
	d := toDomainWallet(*m)
	return &d, nil
}

func (r *PgxWalletRepository) FindWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		m, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, toDomainWallet(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", rows.Err())
	}
	return wallets, nil
}

func (r *PgxWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
        UPDATE wallets
        SET user_id = $1, nonce = $2, is_primary = $3, last_updated_at = $4
        WHERE wallet_id = $5;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		wallet.UserID,
		wallet.Nonce,
		wallet.IsPrimary,
		time.Now(),
		wallet.WalletID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE wallet_id = $1;`, walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// SetPrimaryWallet runs unset-all-then-set-one inside a transaction so two
// concurrent calls cannot leave a user with zero or two primaries.
func (r *PgxWalletRepository) SetPrimaryWallet(ctx context.Context, userID, walletID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE wallets SET is_primary = FALSE WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to unset primary wallets: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE wallets SET is_primary = TRUE, last_updated_at = $1 WHERE wallet_id = $2 AND user_id = $3;`, time.Now(), walletID, userID)
	if err != nil {
		return fmt.Errorf("failed to set primary wallet: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found for user: %w", apperrors.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit primary wallet change: %w", err)
	}
	return nil
}
