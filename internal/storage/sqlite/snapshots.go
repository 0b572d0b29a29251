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

// SaveSnapshot persists a settlement snapshot with its result rows. Snapshots
// are immutable once written; there is no update path.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snapshot *models.SettlementSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.CreatedAt == 0 {
		snapshot.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, title, mode, period, fee_at_save, total_working_days, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshot.ID, snapshot.Title, string(snapshot.Mode), snapshot.Period,
		snapshot.FeeAtSave, snapshot.TotalWorkingDays, snapshot.CreatedAt, snapshot.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for i, r := range snapshot.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot_results
			   (snapshot_id, member_id, member_name, driver_days, passenger_days, active_days, debt, credit, gross_credit, net, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snapshot.ID, r.MemberID, r.MemberName, r.DriverDays, r.PassengerDays,
			r.ActiveDays, r.Debt, r.Credit, r.GrossCredit, r.Net, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSnapshot retrieves a snapshot with its result rows.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*models.SettlementSnapshot, error) {
	snapshot := &models.SettlementSnapshot{}
	var mode string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, mode, period, fee_at_save, total_working_days, created_at, created_by
		 FROM snapshots WHERE id = ?`, id,
	).Scan(&snapshot.ID, &snapshot.Title, &mode, &snapshot.Period,
		&snapshot.FeeAtSave, &snapshot.TotalWorkingDays, &snapshot.CreatedAt, &snapshot.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	snapshot.Mode = models.SettlementMode(mode)

	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id, member_name, driver_days, passenger_days, active_days, debt, credit, gross_credit, net
		 FROM snapshot_results WHERE snapshot_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.SettlementResult
		if err := rows.Scan(&r.MemberID, &r.MemberName, &r.DriverDays, &r.PassengerDays,
			&r.ActiveDays, &r.Debt, &r.Credit, &r.GrossCredit, &r.Net); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot result: %w", err)
		}
		snapshot.Results = append(snapshot.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot results: %w", err)
	}
	return snapshot, nil
}

// ListSnapshots returns all snapshots, newest first, without result rows.
// Use GetSnapshot for the full record.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]models.SettlementSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, mode, period, fee_at_save, total_working_days, created_at, created_by
		 FROM snapshots ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.SettlementSnapshot
	for rows.Next() {
		var snap models.SettlementSnapshot
		var mode string
		if err := rows.Scan(&snap.ID, &snap.Title, &mode, &snap.Period,
			&snap.FeeAtSave, &snap.TotalWorkingDays, &snap.CreatedAt, &snap.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.Mode = models.SettlementMode(mode)
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// DeleteSnapshot removes a snapshot and its result rows.
func (s *SQLiteStore) DeleteSnapshot(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %s: %w", id, storage.ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshot_results WHERE snapshot_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete snapshot results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SnapshotExists reports whether a snapshot with the given title, or one with
// the same mode and period, already exists.
func (s *SQLiteStore) SnapshotExists(ctx context.Context, title string, mode models.SettlementMode, period string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM snapshots WHERE title = ? OR (mode = ? AND period = ?)",
		title, string(mode), period,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check snapshot existence: %w", err)
	}
	return count > 0, nil
}
