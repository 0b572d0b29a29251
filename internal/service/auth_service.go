package service

import (
	"context"
	"log/slog"

	"github.com/jhensel/fahrgeld/internal/auth"
	"github.com/jhensel/fahrgeld/internal/models"
)

// AuthService handles admin registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new admin account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.AdminUser, string, error) {
	if email == "" || displayName == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		slog.Error("Registration failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("Admin registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates an admin and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AdminUser, string, error) {
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("Admin logged in", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}
