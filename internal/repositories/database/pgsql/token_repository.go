package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velorashop/velora_backend/internal/apperrors"
	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	"github.com/velorashop/velora_backend/internal/models"
)

type PgxTokenRepository struct {
	db *pgxpool.Pool
}

func newPgxTokenRepository(db *pgxpool.Pool) portsrepo.TokenRepository {
	return &PgxTokenRepository{db: db}
}

var _ portsrepo.TokenRepository = (*PgxTokenRepository)(nil)

func toDomainToken(m models.AuthToken) domain.AuthToken {
	return domain.AuthToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		Email:     m.Email,
		Role:      domain.Role(m.Role),
		Token:     m.Token,
		Device:    m.Device,
		Kind:      domain.TokenKind(m.Kind),
		Active:    m.Active,
		IssuedAt:  m.IssuedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

func (r *PgxTokenRepository) SaveToken(ctx context.Context, token domain.AuthToken) error {
	query := `
        INSERT INTO auth_tokens (token_id, user_id, email, role, token, device, kind, active, issued_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		token.TokenID,
		token.UserID,
		token.Email,
		string(token.Role),
		token.Token,
		token.Device,
		string(token.Kind),
		token.Active,
		token.IssuedAt,
		token.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("token already recorded: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save token ledger entry: %w", err)
	}
	return nil
}

func (r *PgxTokenRepository) FindByToken(ctx context.Context, tokenString string) (*domain.AuthToken, error) {
	query := `
        SELECT token_id, user_id, email, role, token, device, kind, active, issued_at, expires_at
        FROM auth_tokens
        WHERE token = $1;
    `
	var m models.AuthToken
	err := r.db.QueryRow(ctx, query, tokenString).Scan(
		&m.TokenID,
		&m.UserID,
		&m.Email,
		&m.Role,
		&m.Token,
		&m.Device,
		&m.Kind,
		&m.Active,
		&m.IssuedAt,
		&m.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry: %w", err)
	}
	d := toDomainToken(m)
	return &d, nil
}

// DeactivateToken only ever flips active from true to false; an inactive row
// stays inactive forever.
func (r *PgxTokenRepository) DeactivateToken(ctx context.Context, tokenID string) error {
	query := `UPDATE auth_tokens SET active = FALSE WHERE token_id = $1 AND active = TRUE;`
	cmdTag, err := r.db.Exec(ctx, query, tokenID)
	if err != nil {
		return fmt.Errorf("failed to deactivate token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("token not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTokenRepository) DeactivateUserTokens(ctx context.Context, userID string, kind domain.TokenKind) error {
	query := `UPDATE auth_tokens SET active = FALSE WHERE user_id = $1 AND kind = $2 AND active = TRUE;`
	if _, err := r.db.Exec(ctx, query, userID, string(kind)); err != nil {
		return fmt.Errorf("failed to deactivate tokens for user %s: %w", userID, err)
	}
	return nil
}
