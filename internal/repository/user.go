package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crime-alert/backend/internal/db"
	"github.com/crime-alert/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
	INSERT INTO users (id, name, email, password_hash, role, phone, dob, is_verified, otp, otp_expiry, otp_attempts, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8, $9, 0, now(), now());
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Phone,
		user.DateOfBirth,
		user.Otp,
		user.OtpExpiry,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == db.UniqueViolation {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
	SELECT id, name, email, password_hash, role, phone, dob, is_verified, otp, otp_expiry, otp_attempts, created_at, updated_at
	FROM users WHERE email = $1;
	`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from users by email failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE users SET is_verified = true, otp = NULL, otp_expiry = NULL, otp_attempts = 0, updated_at = now() WHERE id = $1;
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update users verified flag failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

// SetOtp issues a fresh code: expiry moves forward and the attempt
// counter starts over.
func (r *userRepository) SetOtp(ctx context.Context, id uuid.UUID, code string, expiry time.Time) error {
	const query = `
	UPDATE users SET otp = $1, otp_expiry = $2, otp_attempts = 0, updated_at = now() WHERE id = $3;
	`
	res, err := r.db.ExecContext(ctx, query, code, expiry, id)
	if err != nil {
		return fmt.Errorf("update users otp failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

// IncrementOtpAttempts bumps the counter in a single statement and
// returns the new value, so two concurrent failed checks cannot both
// observe the same count.
func (r *userRepository) IncrementOtpAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	const query = `
	UPDATE users SET otp_attempts = otp_attempts + 1, updated_at = now() WHERE id = $1 RETURNING otp_attempts;
	`
	var attempts int
	if err := r.db.GetContext(ctx, &attempts, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment otp attempts failed: %w", err)
	}

	return attempts, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
	UPDATE users SET password_hash = $1, otp = NULL, otp_expiry = NULL, updated_at = now() WHERE id = $2;
	`
	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update users password failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1;`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	return nil
}

func (r *userRepository) DeleteUnverified(ctx context.Context, email string, phone string) (bool, error) {
	const query = `DELETE FROM users WHERE email = $1 AND phone = $2 AND is_verified = false;`
	res, err := r.db.ExecContext(ctx, query, email, phone)
	if err != nil {
		return false, fmt.Errorf("delete unverified user failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected failed: %w", err)
	}

	return rows > 0, nil
}

func (r *userRepository) UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) error {
	const query = `
	UPDATE users
	SET current_location = ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
	    location_updated_at = now(),
	    updated_at = now()
	WHERE id = $3;
	`
	res, err := r.db.ExecContext(ctx, query, longitude, latitude, id)
	if err != nil {
		return fmt.Errorf("update user location failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users;`
	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count users failed: %w", err)
	}
	return count, nil
}
