package service

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"
	"sonf_backend/internal/logger"
	"sonf_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenPair is what a successful signup/login/refresh hands back.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// AuthService owns credentials and token lifecycle. The core trusts the
// identity this service resolves; nothing else checks credentials.
type AuthService struct {
	users     *repository.UserRepository
	tokens    *repository.TokenRepository
	wallets   *repository.WalletRepository
	referrals *ReferralService
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{
		users:     repository.NewUserRepository(db),
		tokens:    repository.NewTokenRepository(db),
		wallets:   repository.NewWalletRepository(db),
		referrals: NewReferralService(db),
	}
}

// Signup creates the user and their wallet. When a valid referral code is
// supplied the signup bonus is paid to both sides via the referral
// coordinator. An unknown code never blocks the signup.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName, username, referralCode string) (*domain.User, *TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Username:     username,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case repository.IsUniqueViolation(err, "users_email_key"):
			return nil, nil, ErrEmailTaken
		case repository.IsUniqueViolation(err, "users_username_key"):
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}

	if _, err := s.wallets.GetOrCreate(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	if referralCode != "" {
		if err := s.referrals.Link(ctx, user.ID, referralCode); err != nil {
			// The account exists; a failed bonus is logged, not fatal.
			logger.Error("referral link failed", "user_id", user.ID, "error", err)
		}
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies the password and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh mints a new access token from a live refresh token. The refresh
// token itself is not rotated; it stays valid until logout or expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ident, err := ParseRefreshJWT(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	valid, err := s.tokens.IsValid(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, ident.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	token, err := GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Token: token}, nil
}

// Logout revokes the refresh token so it can never mint access tokens again.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	token, err := GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateRefreshJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Store(ctx, user.ID, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{Token: token, RefreshToken: refresh}, nil
}
