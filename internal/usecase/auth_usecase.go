package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/AintAsh/Churn-Prediction/internal/domain/entity"
	"github.com/AintAsh/Churn-Prediction/internal/domain/repository"
	"github.com/AintAsh/Churn-Prediction/internal/infrastructure/metrics"
)

// Error definitions for auth usecase
var (
	ErrDuplicateUser      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenOutput represents an issued bearer token with its metadata
type TokenOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AuthUsecase defines the interface for credential and token logic
type AuthUsecase interface {
	Register(ctx context.Context, username, password string) (*TokenOutput, error)
	Login(ctx context.Context, username, password string) (*TokenOutput, error)
	VerifyToken(token string) (string, error)
}

type authUsecase struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthUsecase creates a new auth usecase. Tokens are signed with
// the symmetric secret and live for tokenTTL.
func NewAuthUsecase(users repository.UserRepository, secret []byte, tokenTTL time.Duration) AuthUsecase {
	return &authUsecase{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (u *authUsecase) Register(ctx context.Context, username, password string) (*TokenOutput, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, string(hash))
	if err := u.users.CreateIfAbsent(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			metrics.AuthFailuresTotal.WithLabelValues("duplicate_user").Inc()
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return u.issueToken(username)
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (*TokenOutput, error) {
	user, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	// Unknown user and wrong password must be indistinguishable to the
	// caller, so both collapse into ErrInvalidCredentials.
	if user == nil || user.Disabled {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	return u.issueToken(username)
}

func (u *authUsecase) issueToken(username string) (*TokenOutput, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(u.tokenTTL)),
	})

	signed, err := token.SignedString(u.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenOutput{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(u.tokenTTL.Seconds()),
	}, nil
}

// VerifyToken checks signature and expiry and returns the subject
// username. It touches no shared state.
func (u *authUsecase) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
