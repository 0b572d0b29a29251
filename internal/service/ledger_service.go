// Package service contains the transport-facing orchestration: it validates
// requests, reads and writes through storage.Store, and calls into the pure
// settlement engine. HTTP concerns stay in internal/api.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jhensel/fahrgeld/internal/models"
	"github.com/jhensel/fahrgeld/internal/storage"
)

// ErrValidation wraps all bad-input errors so the API layer can map them to
// 400 responses uniformly.
var ErrValidation = errors.New("invalid input")

// LedgerService manages the roster, the trip calendar, and the fee schedule.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func validMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// CreateMember adds a member to the roster.
func (s *LedgerService) CreateMember(ctx context.Context, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: member name required", ErrValidation)
	}

	member := &models.Member{Name: name}
	if err := s.store.CreateMember(ctx, member); err != nil {
		slog.Error("CreateMember failed", "error", err)
		return nil, err
	}
	slog.Info("Member created", "member_id", member.ID, "name", member.Name)
	return member, nil
}

// ListMembers returns the active roster.
func (s *LedgerService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.store.ListMembers(ctx)
}

// RenameMember changes a member's display name. Saved snapshots keep the old
// name; only future computations pick up the new one.
func (s *LedgerService) RenameMember(ctx context.Context, id, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: member name required", ErrValidation)
	}

	member := &models.Member{ID: id, Name: name}
	if err := s.store.UpdateMember(ctx, member); err != nil {
		slog.Error("RenameMember failed", "member_id", id, "error", err)
		return nil, err
	}
	slog.Info("Member renamed", "member_id", id, "name", name)
	return member, nil
}

// DeleteMember removes a member from the roster.
func (s *LedgerService) DeleteMember(ctx context.Context, id string) error {
	if err := s.store.DeleteMember(ctx, id); err != nil {
		slog.Error("DeleteMember failed", "member_id", id, "error", err)
		return err
	}
	slog.Info("Member deleted", "member_id", id)
	return nil
}

// UpsertTrip creates or replaces the trip entry for a calendar date.
func (s *LedgerService) UpsertTrip(ctx context.Context, trip *models.TripRecord) (*models.TripRecord, error) {
	if !validDate(trip.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, trip.Date)
	}
	if !trip.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown trip type %q", ErrValidation, trip.Type)
	}

	if err := s.store.UpsertTrip(ctx, trip); err != nil {
		slog.Error("UpsertTrip failed", "date", trip.Date, "error", err)
		return nil, err
	}
	slog.Info("Trip saved",
		"date", trip.Date,
		"driver_id", trip.DriverID,
		"participants", len(trip.ParticipantIDs),
		"type", trip.Type,
	)
	return trip, nil
}

// GetTrip returns the trip for a calendar date.
func (s *LedgerService) GetTrip(ctx context.Context, date string) (*models.TripRecord, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, date)
	}
	return s.store.GetTrip(ctx, date)
}

// ListTrips returns every trip of a YYYY-MM month.
func (s *LedgerService) ListTrips(ctx context.Context, month string) ([]models.TripRecord, error) {
	if !validMonth(month) {
		return nil, fmt.Errorf("%w: month must be YYYY-MM, got %q", ErrValidation, month)
	}
	return s.store.ListTripsByMonth(ctx, month)
}

// DeleteTrip removes the trip entry for a calendar date.
func (s *LedgerService) DeleteTrip(ctx context.Context, date string) error {
	if !validDate(date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, date)
	}
	if err := s.store.DeleteTrip(ctx, date); err != nil {
		slog.Error("DeleteTrip failed", "date", date, "error", err)
		return err
	}
	slog.Info("Trip deleted", "date", date)
	return nil
}

// GetFeeSchedule returns the fee schedule. A never-configured schedule comes
// back as nil; the settlement engine falls back to the default fee.
func (s *LedgerService) GetFeeSchedule(ctx context.Context) (*models.DailyFeeSchedule, error) {
	return s.store.GetFeeSchedule(ctx)
}

// ApplyUniformFee sets the fee for all dates, discarding any scheduled change.
func (s *LedgerService) ApplyUniformFee(ctx context.Context, fee float64) (*models.DailyFeeSchedule, error) {
	if fee <= 0 {
		return nil, fmt.Errorf("%w: fee must be positive", ErrValidation)
	}

	schedule := &models.DailyFeeSchedule{CurrentFee: fee}
	if err := s.store.SetFeeSchedule(ctx, schedule); err != nil {
		slog.Error("ApplyUniformFee failed", "error", err)
		return nil, err
	}
	slog.Info("Fee applied uniformly", "fee", fee)
	return schedule, nil
}

// ScheduleFeeChange keeps the current fee for dates before effectiveDate and
// charges the new fee from effectiveDate on.
func (s *LedgerService) ScheduleFeeChange(ctx context.Context, newFee float64, effectiveDate string) (*models.DailyFeeSchedule, error) {
	if newFee <= 0 {
		return nil, fmt.Errorf("%w: fee must be positive", ErrValidation)
	}
	if !validDate(effectiveDate) {
		return nil, fmt.Errorf("%w: effective date must be YYYY-MM-DD, got %q", ErrValidation, effectiveDate)
	}

	current, err := s.store.GetFeeSchedule(ctx)
	if err != nil {
		return nil, err
	}
	previous := settlementCurrentFee(current)

	schedule := &models.DailyFeeSchedule{
		CurrentFee:    newFee,
		PreviousFee:   &previous,
		EffectiveDate: effectiveDate,
	}
	if err := s.store.SetFeeSchedule(ctx, schedule); err != nil {
		slog.Error("ScheduleFeeChange failed", "error", err)
		return nil, err
	}
	slog.Info("Fee change scheduled", "new_fee", newFee, "effective_date", effectiveDate, "previous_fee", previous)
	return schedule, nil
}
