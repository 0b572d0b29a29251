package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhensel/fahrgeld/internal/models"
)

// GetFeeSchedule returns the singleton fee schedule, or nil if it was never
// configured (callers fall back to the default fee).
func (s *SQLiteStore) GetFeeSchedule(ctx context.Context) (*models.DailyFeeSchedule, error) {
	schedule := &models.DailyFeeSchedule{}
	var previousFee sql.NullFloat64
	var effectiveDate sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT current_fee, previous_fee, effective_date, updated_at FROM fee_schedule WHERE id = 1",
	).Scan(&schedule.CurrentFee, &previousFee, &effectiveDate, &schedule.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fee schedule: %w", err)
	}

	if previousFee.Valid {
		v := previousFee.Float64
		schedule.PreviousFee = &v
	}
	if effectiveDate.Valid {
		schedule.EffectiveDate = effectiveDate.String
	}
	return schedule, nil
}

// SetFeeSchedule replaces the singleton fee schedule.
func (s *SQLiteStore) SetFeeSchedule(ctx context.Context, schedule *models.DailyFeeSchedule) error {
	if schedule.UpdatedAt == 0 {
		schedule.UpdatedAt = time.Now().Unix()
	}

	var previousFee interface{}
	if schedule.PreviousFee != nil {
		previousFee = *schedule.PreviousFee
	}
	var effectiveDate interface{}
	if schedule.EffectiveDate != "" {
		effectiveDate = schedule.EffectiveDate
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fee_schedule (id, current_fee, previous_fee, effective_date, updated_at)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   current_fee = excluded.current_fee,
		   previous_fee = excluded.previous_fee,
		   effective_date = excluded.effective_date,
		   updated_at = excluded.updated_at`,
		schedule.CurrentFee, previousFee, effectiveDate, schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set fee schedule: %w", err)
	}
	return nil
}
