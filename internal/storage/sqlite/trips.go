package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhensel/fahrgeld/internal/models"
	"github.com/jhensel/fahrgeld/internal/storage"
)

// UpsertTrip creates or replaces the trip record for trip.Date. The calendar
// holds at most one trip per day, so an existing record for the date is
// deleted first and its id reused.
func (s *SQLiteStore) UpsertTrip(ctx context.Context, trip *models.TripRecord) error {
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	var createdAt int64
	err = tx.QueryRowContext(ctx,
		"SELECT id, created_at FROM trips WHERE date = ?", trip.Date,
	).Scan(&existingID, &createdAt)
	switch {
	case err == sql.ErrNoRows:
		if trip.ID == "" {
			trip.ID = uuid.New().String()
		}
		trip.CreatedAt = now
	case err != nil:
		return fmt.Errorf("failed to look up trip for %s: %w", trip.Date, err)
	default:
		trip.ID = existingID
		trip.CreatedAt = createdAt
		if _, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", existingID); err != nil {
			return fmt.Errorf("failed to replace trip: %w", err)
		}
		// Explicit cleanup; cascade depends on the per-connection FK pragma.
		if _, err := tx.ExecContext(ctx, "DELETE FROM trip_participants WHERE trip_id = ?", existingID); err != nil {
			return fmt.Errorf("failed to replace trip participants: %w", err)
		}
	}
	trip.UpdatedAt = now
	if trip.Type == "" {
		trip.Type = models.TripFull
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, date, driver_id, trip_type, distance_km, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Date, trip.DriverID, string(trip.Type), trip.DistanceKm, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	seen := make(map[string]bool, len(trip.ParticipantIDs))
	for _, memberID := range trip.ParticipantIDs {
		if memberID == "" || seen[memberID] {
			continue
		}
		seen[memberID] = true
		_, err = tx.ExecContext(ctx,
			"INSERT INTO trip_participants (trip_id, member_id) VALUES (?, ?)",
			trip.ID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves the trip for a calendar date, including participants.
func (s *SQLiteStore) GetTrip(ctx context.Context, date string) (*models.TripRecord, error) {
	trip := &models.TripRecord{}
	var tripType string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, date, driver_id, trip_type, distance_km, created_at, updated_at
		 FROM trips WHERE date = ?`, date,
	).Scan(&trip.ID, &trip.Date, &trip.DriverID, &tripType, &trip.DistanceKm, &trip.CreatedAt, &trip.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip for %s: %w", date, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	trip.Type = models.TripType(tripType)

	if err := s.loadParticipants(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTripsByMonth returns every trip whose date falls in the given YYYY-MM
// month, ordered by date.
func (s *SQLiteStore) ListTripsByMonth(ctx context.Context, month string) ([]models.TripRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, driver_id, trip_type, distance_km, created_at, updated_at
		 FROM trips WHERE substr(date, 1, 7) = ? ORDER BY date`, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []models.TripRecord
	for rows.Next() {
		var trip models.TripRecord
		var tripType string
		if err := rows.Scan(&trip.ID, &trip.Date, &trip.DriverID, &tripType,
			&trip.DistanceKm, &trip.CreatedAt, &trip.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trip.Type = models.TripType(tripType)
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	for i := range trips {
		if err := s.loadParticipants(ctx, &trips[i]); err != nil {
			return nil, err
		}
	}
	return trips, nil
}

// DeleteTrip removes the trip for a calendar date.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, date string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, "SELECT id FROM trips WHERE date = ?", date).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("trip for %s: %w", date, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up trip for %s: %w", date, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM trip_participants WHERE trip_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete trip participants: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, trip *models.TripRecord) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM trip_participants WHERE trip_id = ? ORDER BY member_id",
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get trip participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return fmt.Errorf("failed to scan trip participant: %w", err)
		}
		trip.ParticipantIDs = append(trip.ParticipantIDs, memberID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate trip participants: %w", err)
	}
	return nil
}
