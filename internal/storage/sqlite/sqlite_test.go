package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jhensel/fahrgeld/internal/models"
	"github.com/jhensel/fahrgeld/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fahrgeld-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStoreMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateMember generates ID", func(t *testing.T) {
		m := &models.Member{Name: "Anna"}
		if err := store.CreateMember(ctx, m); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}
		if m.ID == "" {
			t.Error("Expected member ID to be generated")
		}
		if m.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("ListMembers returns roster", func(t *testing.T) {
		if err := store.CreateMember(ctx, &models.Member{Name: "Ben"}); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}

		members, err := store.ListMembers(ctx)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(members))
		}
	})

	t.Run("UpdateMember renames", func(t *testing.T) {
		members, _ := store.ListMembers(ctx)
		m := members[0]
		m.Name = "Anna K."
		if err := store.UpdateMember(ctx, &m); err != nil {
			t.Fatalf("UpdateMember failed: %v", err)
		}

		members, _ = store.ListMembers(ctx)
		if members[0].Name != "Anna K." {
			t.Errorf("Expected renamed member, got %q", members[0].Name)
		}
	})

	t.Run("UpdateMember on unknown id returns not found", func(t *testing.T) {
		err := store.UpdateMember(ctx, &models.Member{ID: "nope", Name: "x"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("UpsertTrip creates and retrieves", func(t *testing.T) {
		trip := &models.TripRecord{
			Date:           "2024-03-04",
			DriverID:       "a",
			ParticipantIDs: []string{"a", "b", "c"},
			Type:           models.TripFull,
			DistanceKm:     42.5,
		}
		if err := store.UpsertTrip(ctx, trip); err != nil {
			t.Fatalf("UpsertTrip failed: %v", err)
		}
		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}

		got, err := store.GetTrip(ctx, "2024-03-04")
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if got.DriverID != "a" || len(got.ParticipantIDs) != 3 || got.DistanceKm != 42.5 {
			t.Errorf("Unexpected trip: %+v", got)
		}
	})

	t.Run("second upsert for the same date replaces, keeps one record", func(t *testing.T) {
		trip := &models.TripRecord{
			Date:           "2024-03-04",
			DriverID:       "b",
			ParticipantIDs: []string{"b", "c"},
			Type:           models.TripMorning,
		}
		if err := store.UpsertTrip(ctx, trip); err != nil {
			t.Fatalf("UpsertTrip failed: %v", err)
		}

		trips, err := store.ListTripsByMonth(ctx, "2024-03")
		if err != nil {
			t.Fatalf("ListTripsByMonth failed: %v", err)
		}
		if len(trips) != 1 {
			t.Fatalf("Expected 1 trip for the date, got %d", len(trips))
		}
		if trips[0].DriverID != "b" || trips[0].Type != models.TripMorning {
			t.Errorf("Expected replaced trip, got %+v", trips[0])
		}
		if len(trips[0].ParticipantIDs) != 2 {
			t.Errorf("Expected replaced participants, got %v", trips[0].ParticipantIDs)
		}
	})

	t.Run("ListTripsByMonth filters by month", func(t *testing.T) {
		other := &models.TripRecord{Date: "2024-04-01", DriverID: "a"}
		if err := store.UpsertTrip(ctx, other); err != nil {
			t.Fatalf("UpsertTrip failed: %v", err)
		}

		march, _ := store.ListTripsByMonth(ctx, "2024-03")
		april, _ := store.ListTripsByMonth(ctx, "2024-04")
		if len(march) != 1 || len(april) != 1 {
			t.Errorf("Expected 1 trip per month, got %d and %d", len(march), len(april))
		}
	})

	t.Run("DeleteTrip removes the date", func(t *testing.T) {
		if err := store.DeleteTrip(ctx, "2024-04-01"); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if _, err := store.GetTrip(ctx, "2024-04-01"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
	})
}

func TestSQLiteStoreFeeSchedule(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unconfigured schedule is nil", func(t *testing.T) {
		schedule, err := store.GetFeeSchedule(ctx)
		if err != nil {
			t.Fatalf("GetFeeSchedule failed: %v", err)
		}
		if schedule != nil {
			t.Errorf("Expected nil schedule, got %+v", schedule)
		}
	})

	t.Run("set and read back with scheduled change", func(t *testing.T) {
		previous := 80.0
		in := &models.DailyFeeSchedule{
			CurrentFee:    100,
			PreviousFee:   &previous,
			EffectiveDate: "2024-02-01",
		}
		if err := store.SetFeeSchedule(ctx, in); err != nil {
			t.Fatalf("SetFeeSchedule failed: %v", err)
		}

		got, err := store.GetFeeSchedule(ctx)
		if err != nil {
			t.Fatalf("GetFeeSchedule failed: %v", err)
		}
		if got.CurrentFee != 100 || got.PreviousFee == nil || *got.PreviousFee != 80 || got.EffectiveDate != "2024-02-01" {
			t.Errorf("Unexpected schedule: %+v", got)
		}
	})

	t.Run("uniform update clears the scheduled change", func(t *testing.T) {
		if err := store.SetFeeSchedule(ctx, &models.DailyFeeSchedule{CurrentFee: 120}); err != nil {
			t.Fatalf("SetFeeSchedule failed: %v", err)
		}

		got, _ := store.GetFeeSchedule(ctx)
		if got.CurrentFee != 120 || got.PreviousFee != nil || got.EffectiveDate != "" {
			t.Errorf("Expected cleared change, got %+v", got)
		}
	})
}

func TestSQLiteStoreSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := &models.SettlementSnapshot{
		Title:     "March settlement",
		Mode:      models.ModeAuto,
		Period:    "2024-03",
		FeeAtSave: 100,
		Results: []models.SettlementResult{
			{MemberID: "a", MemberName: "Anna", DriverDays: 2, Credit: 400, Net: 400},
			{MemberID: "b", MemberName: "Ben", PassengerDays: 2, ActiveDays: 2, Debt: 200, Net: -200},
		},
	}

	t.Run("SaveSnapshot and GetSnapshot roundtrip", func(t *testing.T) {
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}

		got, err := store.GetSnapshot(ctx, snap.ID)
		if err != nil {
			t.Fatalf("GetSnapshot failed: %v", err)
		}
		if got.Title != "March settlement" || got.Mode != models.ModeAuto || len(got.Results) != 2 {
			t.Errorf("Unexpected snapshot: %+v", got)
		}
		if got.Results[0].MemberName != "Anna" || got.Results[0].Credit != 400 {
			t.Errorf("Unexpected first result row: %+v", got.Results[0])
		}
	})

	t.Run("saved snapshot survives member rename and trip edits", func(t *testing.T) {
		// Snapshots are write-time captures; live data changes must not leak in.
		m := &models.Member{ID: "a", Name: "Anna"}
		if err := store.CreateMember(ctx, m); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}
		m.Name = "Annabelle"
		if err := store.UpdateMember(ctx, m); err != nil {
			t.Fatalf("UpdateMember failed: %v", err)
		}
		trip := &models.TripRecord{Date: "2024-03-05", DriverID: "b", ParticipantIDs: []string{"a"}}
		if err := store.UpsertTrip(ctx, trip); err != nil {
			t.Fatalf("UpsertTrip failed: %v", err)
		}

		got, err := store.GetSnapshot(ctx, snap.ID)
		if err != nil {
			t.Fatalf("GetSnapshot failed: %v", err)
		}
		if got.Results[0].MemberName != "Anna" {
			t.Errorf("Snapshot name changed to %q, want the name captured at save time", got.Results[0].MemberName)
		}
		if got.Results[0].Credit != 400 || got.Results[1].Debt != 200 {
			t.Errorf("Snapshot amounts changed: %+v", got.Results)
		}
	})

	t.Run("SnapshotExists matches title and mode+period", func(t *testing.T) {
		byTitle, err := store.SnapshotExists(ctx, "March settlement", models.ModeManual, "other")
		if err != nil {
			t.Fatalf("SnapshotExists failed: %v", err)
		}
		byPeriod, err := store.SnapshotExists(ctx, "different title", models.ModeAuto, "2024-03")
		if err != nil {
			t.Fatalf("SnapshotExists failed: %v", err)
		}
		fresh, err := store.SnapshotExists(ctx, "different title", models.ModeAuto, "2024-04")
		if err != nil {
			t.Fatalf("SnapshotExists failed: %v", err)
		}
		if !byTitle || !byPeriod || fresh {
			t.Errorf("SnapshotExists = %v/%v/%v, want true/true/false", byTitle, byPeriod, fresh)
		}
	})

	t.Run("DeleteSnapshot removes record and rows", func(t *testing.T) {
		if err := store.DeleteSnapshot(ctx, snap.ID); err != nil {
			t.Fatalf("DeleteSnapshot failed: %v", err)
		}
		if _, err := store.GetSnapshot(ctx, snap.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
	})
}
