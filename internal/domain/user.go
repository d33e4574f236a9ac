package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

type User struct {
	ID           string    `json:"id"` // UUID
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"isVerified"`
	OTP          *OTP      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OTP is the pending email-verification code; cleared once verified.
type OTP struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// MarkVerified flips the verification flag and clears the OTP.
	MarkVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Mailer is the black-box delivery channel for verification codes.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}
