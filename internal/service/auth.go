package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/auth"
	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

// TokenIssuer mints access tokens. *auth.JWTManager implements it.
type TokenIssuer interface {
	GenerateToken(user domain.User) (string, time.Time, error)
}

// Registration is the input to AuthService.Register.
type Registration struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
}

// Token is an issued access token and the user it belongs to.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	User        domain.User
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user account. A taken username returns domain.ErrConflict.
func (s *AuthService) Register(ctx context.Context, reg Registration) (domain.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	if reg.Username == "" {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: username is required", domain.ErrValidation)
	}
	if reg.Password != reg.Password2 {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: password fields didn't match", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Username:     reg.Username,
		Email:        strings.TrimSpace(reg.Email),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", explain(err, domain.ErrConflict, "username already taken"))
	}
	return user, nil
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords both return domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (Token, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Token{}, fmt.Errorf("service.AuthService.Login: %w: invalid credentials", domain.ErrUnauthorized)
		}
		return Token{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return Token{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	tok, exp, err := s.tokens.GenerateToken(user)
	if err != nil {
		return Token{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return Token{AccessToken: tok, ExpiresAt: exp, User: user}, nil
}

// Me returns the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Me: %w", err)
	}
	return user, nil
}
