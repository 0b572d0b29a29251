package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jhensel/fahrgeld/internal/middleware"
	"github.com/jhensel/fahrgeld/internal/models"
	"github.com/jhensel/fahrgeld/internal/service"
)

func (s *Server) handleComputeAuto(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	comp, err := s.settlements.ComputeAuto(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

func (s *Server) handleComputeManual(w http.ResponseWriter, r *http.Request) {
	var req service.ManualRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comp, err := s.settlements.ComputeManual(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

type saveSnapshotRequest struct {
	Title string                `json:"title"`
	Mode  models.SettlementMode `json:"mode"`

	// Month selects the trip ledger period for auto snapshots.
	Month string `json:"month,omitempty"`

	// Manual carries the admin-entered counts for manual snapshots.
	Manual *service.ManualRequest `json:"manual,omitempty"`
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req saveSnapshotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	createdBy := middleware.GetUserID(r.Context())

	var (
		snapshot *models.SettlementSnapshot
		err      error
	)
	switch req.Mode {
	case models.ModeAuto:
		snapshot, err = s.settlements.SaveAutoSnapshot(r.Context(), req.Title, req.Month, createdBy)
	case models.ModeManual:
		if req.Manual == nil {
			writeError(w, fmt.Errorf("%w: manual counts required for a manual snapshot", service.ErrValidation))
			return
		}
		snapshot, err = s.settlements.SaveManualSnapshot(r.Context(), req.Title, *req.Manual, createdBy)
	default:
		writeError(w, fmt.Errorf("%w: snapshot mode must be auto or manual", service.ErrValidation))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snapshot)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.settlements.ListSnapshots(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []models.SettlementSnapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.settlements.GetSnapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.settlements.DeleteSnapshot(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
