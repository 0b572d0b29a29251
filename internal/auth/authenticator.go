package auth

import (
	"context"

	"github.com/jhensel/fahrgeld/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// OAuth, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new admin account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.AdminUser, error)

	// Authenticate verifies the credentials and returns the admin if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.AdminUser, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements.
	ValidateCredential(credential string) error
}
