package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jhensel/fahrgeld/internal/models"
	"github.com/jhensel/fahrgeld/internal/service"
)

type memberRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	member, err := s.ledger.CreateMember(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.ledger.ListMembers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleRenameMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	member, err := s.ledger.RenameMember(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type tripRequest struct {
	DriverID       string          `json:"driver_id"`
	ParticipantIDs []string        `json:"participant_ids"`
	Type           models.TripType `json:"type"`
	DistanceKm     float64         `json:"distance_km"`
}

func (s *Server) handleUpsertTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip := &models.TripRecord{
		Date:           chi.URLParam(r, "date"),
		DriverID:       req.DriverID,
		ParticipantIDs: req.ParticipantIDs,
		Type:           req.Type,
		DistanceKm:     req.DistanceKm,
	}
	saved, err := s.ledger.UpsertTrip(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.ledger.GetTrip(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	trips, err := s.ledger.ListTrips(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}
	if trips == nil {
		trips = []models.TripRecord{}
	}
	writeJSON(w, http.StatusOK, trips)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTrip(r.Context(), chi.URLParam(r, "date")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type feeUpdateRequest struct {
	// Mode is "uniform" (apply fee to all dates) or "scheduled" (charge the
	// current fee until EffectiveDate, the new fee from then on).
	Mode          string  `json:"mode"`
	Fee           float64 `json:"fee"`
	EffectiveDate string  `json:"effective_date,omitempty"`
}

func (s *Server) handleGetFeeSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := s.ledger.GetFeeSchedule(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if schedule == nil {
		schedule = &models.DailyFeeSchedule{}
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (s *Server) handleUpdateFeeSchedule(w http.ResponseWriter, r *http.Request) {
	var req feeUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		schedule *models.DailyFeeSchedule
		err      error
	)
	switch req.Mode {
	case "uniform":
		schedule, err = s.ledger.ApplyUniformFee(r.Context(), req.Fee)
	case "scheduled":
		schedule, err = s.ledger.ScheduleFeeChange(r.Context(), req.Fee, req.EffectiveDate)
	default:
		writeError(w, fmt.Errorf("%w: fee mode must be uniform or scheduled", service.ErrValidation))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}
