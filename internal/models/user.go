package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an administrator account. Admins maintain the roster, the
// calendar, the fee schedule, and saved settlements. Regular carpool members
// do not have accounts; they are plain roster entries.
type AdminUser struct {
	// ID is the unique identifier for the admin (UUID format).
	ID string `json:"id"`

	// Email is the login identifier (unique).
	Email string `json:"email"`

	// DisplayName is shown in audit fields such as snapshot CreatedBy.
	DisplayName string `json:"display_name"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewAdminUser creates an admin with a fresh ID and timestamps.
func NewAdminUser(email, displayName, passwordHash string) *AdminUser {
	now := time.Now().Unix()
	return &AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
