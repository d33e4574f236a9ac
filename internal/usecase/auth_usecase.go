package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"jayam-backend/internal/domain"
	"jayam-backend/pkg/logger"
	"jayam-backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthUsecase struct {
	userRepo    domain.UserRepository
	mailer      domain.Mailer
	bcryptCost  int
	otpExpiry   time.Duration
	tokenExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, mailer domain.Mailer, bcryptCost int, otpExpiry, tokenExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		mailer:      mailer,
		bcryptCost:  bcryptCost,
		otpExpiry:   otpExpiry,
		tokenExpiry: tokenExpiry,
	}
}

// Signup registers an unverified account and mails a one-time code. If
// the mail cannot be sent the account is rolled back so the email stays
// free for another attempt.
func (u *AuthUsecase) Signup(ctx context.Context, username, email, password, phone, address string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, domain.Validationf("username is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.Validationf("invalid email address")
	}
	if len(password) < 6 {
		return nil, domain.Validationf("password must be at least 6 characters")
	}

	if existing, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		if existing.IsVerified {
			return nil, domain.Preconditionf("an account with this email already exists")
		}
		// Unverified leftover from an abandoned signup; replace it.
		if err := u.userRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	} else if _, ok := domain.AsNotFound(err); !ok {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Role:         "user",
		Phone:        phone,
		Address:      address,
		PasswordHash: string(hash),
		OTP: &domain.OTP{
			Code:      utils.GenerateOTP(6),
			ExpiresAt: time.Now().Add(u.otpExpiry),
		},
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.mailer.SendOTP(ctx, user.Email, user.OTP.Code); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send OTP mail, rolling back signup")
		if delErr := u.userRepo.Delete(ctx, user.ID); delErr != nil {
			logger.Error().Err(delErr).Str("user_id", user.ID).Msg("Failed to roll back user after mail failure")
		}
		return nil, errors.New("failed to send verification email, please try again")
	}

	return user, nil
}

// VerifyOTP confirms the code and marks the account verified.
func (u *AuthUsecase) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domain.Preconditionf("account is already verified")
	}
	if user.OTP == nil {
		return domain.Preconditionf("no pending verification for this account")
	}
	if time.Now().After(user.OTP.ExpiresAt) {
		return domain.Preconditionf("OTP has expired, please sign up again")
	}
	if user.OTP.Code != code {
		return domain.Validationf("invalid OTP")
	}

	return u.userRepo.MarkVerified(ctx, user.ID)
}

// Login checks credentials on a verified account and issues a token.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if _, ok := domain.AsNotFound(err); ok {
			return "", nil, domain.Validationf("invalid email or password")
		}
		return "", nil, err
	}
	if !user.IsVerified {
		return "", nil, domain.Preconditionf("account is not verified")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.Validationf("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, u.tokenExpiry)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
