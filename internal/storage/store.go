// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/jhensel/fahrgeld/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the services need. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// Members.
	CreateMember(ctx context.Context, member *models.Member) error
	ListMembers(ctx context.Context) ([]models.Member, error)
	UpdateMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id string) error

	// Trips. There is at most one trip per calendar date; UpsertTrip
	// replaces the existing record for the date if present.
	UpsertTrip(ctx context.Context, trip *models.TripRecord) error
	GetTrip(ctx context.Context, date string) (*models.TripRecord, error)
	ListTripsByMonth(ctx context.Context, month string) ([]models.TripRecord, error)
	DeleteTrip(ctx context.Context, date string) error

	// Fee schedule (singleton).
	GetFeeSchedule(ctx context.Context) (*models.DailyFeeSchedule, error)
	SetFeeSchedule(ctx context.Context, schedule *models.DailyFeeSchedule) error

	// Settlement snapshots. Saved snapshots are immutable; there is no
	// update operation.
	SaveSnapshot(ctx context.Context, snapshot *models.SettlementSnapshot) error
	GetSnapshot(ctx context.Context, id string) (*models.SettlementSnapshot, error)
	ListSnapshots(ctx context.Context) ([]models.SettlementSnapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error
	SnapshotExists(ctx context.Context, title string, mode models.SettlementMode, period string) (bool, error)

	// Admin users.
	CreateUser(ctx context.Context, user *models.AdminUser) error
	GetUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetUserByID(ctx context.Context, id string) (*models.AdminUser, error)

	// Close releases any resources held by the store.
	Close() error
}
