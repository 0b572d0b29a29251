package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jhensel/fahrgeld/internal/metrics"
	"github.com/jhensel/fahrgeld/internal/models"
	"github.com/jhensel/fahrgeld/internal/settlement"
	"github.com/jhensel/fahrgeld/internal/storage"
)

// ErrDuplicateSnapshot is returned when a snapshot with the same title, or
// the same mode and period, already exists. The check happens before any
// store write.
var ErrDuplicateSnapshot = errors.New("a settlement with this title or period is already saved")

// Computation is a settlement result set with the inputs that produced it.
// It is the in-memory "draft" that recomputes as inputs change; SaveSnapshot
// turns one into a persistent record.
type Computation struct {
	Mode     models.SettlementMode     `json:"mode"`
	Period   string                    `json:"period"`
	Fee      float64                   `json:"fee"`
	Results  []models.SettlementResult `json:"results"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// ManualRequest carries the admin-entered inputs for a manual settlement.
type ManualRequest struct {
	Period           string         `json:"period"`
	TotalWorkingDays int            `json:"total_working_days"`
	DriverDays       map[string]int `json:"driver_days"`
	ActiveDays       map[string]int `json:"active_days"`
}

// SettlementService computes settlements and manages saved snapshots.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func settlementCurrentFee(s *models.DailyFeeSchedule) float64 {
	return settlement.ResolveFee(today(), s)
}

// ComputeAuto derives a settlement for a YYYY-MM month from the trip ledger.
func (s *SettlementService) ComputeAuto(ctx context.Context, month string) (*Computation, error) {
	if !validMonth(month) {
		return nil, fmt.Errorf("%w: month must be YYYY-MM, got %q", ErrValidation, month)
	}

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		slog.Error("ComputeAuto failed - could not list members", "error", err)
		return nil, err
	}
	trips, err := s.store.ListTripsByMonth(ctx, month)
	if err != nil {
		slog.Error("ComputeAuto failed - could not list trips", "month", month, "error", err)
		return nil, err
	}
	schedule, err := s.store.GetFeeSchedule(ctx)
	if err != nil {
		slog.Error("ComputeAuto failed - could not read fee schedule", "error", err)
		return nil, err
	}

	results := settlement.ComputeAuto(trips, members, schedule)
	metrics.SettlementsComputed.WithLabelValues(string(models.ModeAuto)).Inc()

	slog.Info("Auto settlement computed",
		"month", month,
		"trips", len(trips),
		"members", len(members),
	)

	return &Computation{
		Mode:    models.ModeAuto,
		Period:  month,
		Fee:     settlementCurrentFee(schedule),
		Results: results,
	}, nil
}

// ComputeManual derives a settlement from admin-entered day counts. The
// returned warnings are advisory; the result is produced either way.
func (s *SettlementService) ComputeManual(ctx context.Context, req ManualRequest) (*Computation, error) {
	if req.TotalWorkingDays < 0 {
		return nil, fmt.Errorf("%w: total working days cannot be negative", ErrValidation)
	}

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		slog.Error("ComputeManual failed - could not list members", "error", err)
		return nil, err
	}
	schedule, err := s.store.GetFeeSchedule(ctx)
	if err != nil {
		slog.Error("ComputeManual failed - could not read fee schedule", "error", err)
		return nil, err
	}

	input := settlement.ManualInput{
		TotalWorkingDays: req.TotalWorkingDays,
		DriverDays:       req.DriverDays,
		ActiveDays:       req.ActiveDays,
	}
	results := settlement.ComputeManual(members, input, schedule, today())
	warnings := settlement.CheckManualInputs(members, input)
	metrics.SettlementsComputed.WithLabelValues(string(models.ModeManual)).Inc()

	slog.Info("Manual settlement computed",
		"period", req.Period,
		"members", len(members),
		"warnings", len(warnings),
	)

	return &Computation{
		Mode:     models.ModeManual,
		Period:   req.Period,
		Fee:      settlementCurrentFee(schedule),
		Results:  results,
		Warnings: warnings,
	}, nil
}

// SaveAutoSnapshot recomputes the auto settlement for a month and persists it
// under the given title. Duplicate titles and already-settled periods are
// rejected before anything is written.
func (s *SettlementService) SaveAutoSnapshot(ctx context.Context, title, month, createdBy string) (*models.SettlementSnapshot, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: snapshot title required", ErrValidation)
	}

	if err := s.checkDuplicate(ctx, title, models.ModeAuto, month); err != nil {
		return nil, err
	}

	comp, err := s.ComputeAuto(ctx, month)
	if err != nil {
		return nil, err
	}

	snapshot := &models.SettlementSnapshot{
		Title:     title,
		Mode:      models.ModeAuto,
		Period:    month,
		FeeAtSave: comp.Fee,
		Results:   comp.Results,
		CreatedBy: createdBy,
	}
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		slog.Error("SaveAutoSnapshot failed", "title", title, "error", err)
		return nil, err
	}
	metrics.SnapshotsSaved.WithLabelValues(string(models.ModeAuto)).Inc()

	slog.Info("Auto settlement saved", "snapshot_id", snapshot.ID, "title", title, "month", month)
	return snapshot, nil
}

// SaveManualSnapshot computes a manual settlement and persists it. Warnings
// from the consistency check do not block the save; the admin has already
// seen them in the draft view.
func (s *SettlementService) SaveManualSnapshot(ctx context.Context, title string, req ManualRequest, createdBy string) (*models.SettlementSnapshot, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: snapshot title required", ErrValidation)
	}
	if req.Period == "" {
		return nil, fmt.Errorf("%w: settlement period required", ErrValidation)
	}

	if err := s.checkDuplicate(ctx, title, models.ModeManual, req.Period); err != nil {
		return nil, err
	}

	comp, err := s.ComputeManual(ctx, req)
	if err != nil {
		return nil, err
	}

	snapshot := &models.SettlementSnapshot{
		Title:            title,
		Mode:             models.ModeManual,
		Period:           req.Period,
		FeeAtSave:        comp.Fee,
		TotalWorkingDays: req.TotalWorkingDays,
		Results:          comp.Results,
		CreatedBy:        createdBy,
	}
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		slog.Error("SaveManualSnapshot failed", "title", title, "error", err)
		return nil, err
	}
	metrics.SnapshotsSaved.WithLabelValues(string(models.ModeManual)).Inc()

	slog.Info("Manual settlement saved", "snapshot_id", snapshot.ID, "title", title, "period", req.Period)
	return snapshot, nil
}

func (s *SettlementService) checkDuplicate(ctx context.Context, title string, mode models.SettlementMode, period string) error {
	exists, err := s.store.SnapshotExists(ctx, title, mode, period)
	if err != nil {
		slog.Error("Snapshot duplicate check failed", "title", title, "error", err)
		return err
	}
	if exists {
		return ErrDuplicateSnapshot
	}
	return nil
}

// ListSnapshots returns all saved settlements, newest first.
func (s *SettlementService) ListSnapshots(ctx context.Context) ([]models.SettlementSnapshot, error) {
	return s.store.ListSnapshots(ctx)
}

// GetSnapshot returns a saved settlement with its result rows, exactly as
// stored at save time.
func (s *SettlementService) GetSnapshot(ctx context.Context, id string) (*models.SettlementSnapshot, error) {
	return s.store.GetSnapshot(ctx, id)
}

// DeleteSnapshot removes a saved settlement.
func (s *SettlementService) DeleteSnapshot(ctx context.Context, id string) error {
	if err := s.store.DeleteSnapshot(ctx, id); err != nil {
		slog.Error("DeleteSnapshot failed", "snapshot_id", id, "error", err)
		return err
	}
	slog.Info("Snapshot deleted", "snapshot_id", id)
	return nil
}
