package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jayam-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, phone, address, is_verified, otp_code, otp_expires_at, created_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	q := querierFromContext(ctx, r.db)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Role == "" {
		user.Role = "user"
	}

	var otpCode *string
	var otpExpires *time.Time
	if user.OTP != nil {
		otpCode = &user.OTP.Code
		otpExpires = &user.OTP.ExpiresAt
	}

	_, err := q.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, phone, address, is_verified, otp_code, otp_expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role,
		user.Phone, user.Address, user.IsVerified, otpCode, otpExpires, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := querierFromContext(ctx, r.db)
	return r.getOne(ctx, q, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !validUUID(id) {
		return nil, domain.NotFoundf("user not found")
	}
	q := querierFromContext(ctx, r.db)
	return r.getOne(ctx, q, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) getOne(ctx context.Context, q querier, query string, arg any) (*domain.User, error) {
	var (
		u          domain.User
		otpCode    *string
		otpExpires *time.Time
	)
	err := q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Phone,
		&u.Address, &u.IsVerified, &otpCode, &otpExpires, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if otpCode != nil && otpExpires != nil {
		u.OTP = &domain.OTP{Code: *otpCode, ExpiresAt: *otpExpires}
	}
	return &u, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, id string) error {
	q := querierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("user not found")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	q := querierFromContext(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
