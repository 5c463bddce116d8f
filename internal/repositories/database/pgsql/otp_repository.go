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

type PgxOTPRepository struct {
	db *pgxpool.Pool
}

func newPgxOTPRepository(db *pgxpool.Pool) portsrepo.OTPRepository {
	return &PgxOTPRepository{db: db}
}

var _ portsrepo.OTPRepository = (*PgxOTPRepository)(nil)

func toDomainOTP(m models.OTP) domain.OTP {
	return domain.OTP{
		OTPID:     m.OTPID,
		Email:     m.Email,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		IsUsed:    m.IsUsed,
		CreatedAt: m.CreatedAt,
	}
}

func (r *PgxOTPRepository) SaveOTP(ctx context.Context, otp domain.OTP) error {
	query := `
        INSERT INTO password_reset_otps (otp_id, email, code, expires_at, is_used, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		otp.OTPID,
		otp.Email,
		otp.Code,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save OTP: %w", err)
	}
	return nil
}

// FindValidOTP only matches unused, unexpired rows; a consumed OTP can never
// satisfy this lookup again.
func (r *PgxOTPRepository) FindValidOTP(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error) {
	query := `
        SELECT otp_id, email, code, expires_at, is_used, created_at
        FROM password_reset_otps
        WHERE email = $1 AND code = $2 AND is_used = FALSE AND expires_at > $3
        ORDER BY created_at DESC
        LIMIT 1;
    `
	var m models.OTP
	err := r.db.QueryRow(ctx, query, email, code, now).Scan(
		&m.OTPID,
		&m.Email,
		&m.Code,
		&m.ExpiresAt,
		&m.IsUsed,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find OTP: %w", err)
	}
	d := toDomainOTP(m)
	return &d, nil
}

func (r *PgxOTPRepository) MarkOTPUsed(ctx context.Context, otpID string) error {
	query := `UPDATE password_reset_otps SET is_used = TRUE WHERE otp_id = $1 AND is_used = FALSE;`
	cmdTag, err := r.db.Exec(ctx, query, otpID)
	if err != nil {
		return fmt.Errorf("failed to mark OTP used: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("OTP not found or already used: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxOTPRepository) MarkEmailOTPsUsed(ctx context.Context, email string) error {
	query := `UPDATE password_reset_otps SET is_used = TRUE WHERE email = $1 AND is_used = FALSE;`
	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("failed to mark OTPs used for %s: %w", email, err)
	}
	return nil
}
