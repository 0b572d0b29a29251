package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jhensel/fahrgeld/internal/auth"
	"github.com/jhensel/fahrgeld/internal/metrics"
	"github.com/jhensel/fahrgeld/internal/middleware"
	"github.com/jhensel/fahrgeld/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	ledger      *service.LedgerService
	settlements *service.SettlementService
	authSvc     *service.AuthService
	jwtManager  *auth.JWTManager
}

// NewServer creates the API server.
func NewServer(ledger *service.LedgerService, settlements *service.SettlementService, authSvc *service.AuthService, jwtManager *auth.JWTManager) *Server {
	return &Server{
		ledger:      ledger,
		settlements: settlements,
		authSvc:     authSvc,
		jwtManager:  jwtManager,
	}
}

// Router builds the chi router with all routes and middleware. Read-only
// ledger and settlement views are public (the calendar is shared with all
// carpool members); everything that mutates state requires an admin token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Public read-only views.
		r.Get("/members", s.handleListMembers)
		r.Get("/trips", s.handleListTrips)
		r.Get("/trips/{date}", s.handleGetTrip)
		r.Get("/fees", s.handleGetFeeSchedule)
		r.Get("/settlements/auto", s.handleComputeAuto)
		r.Get("/settlements/snapshots", s.handleListSnapshots)
		r.Get("/settlements/snapshots/{id}", s.handleGetSnapshot)

		// Admin-gated mutations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwtManager))

			r.Post("/members", s.handleCreateMember)
			r.Put("/members/{id}", s.handleRenameMember)
			r.Delete("/members/{id}", s.handleDeleteMember)

			r.Put("/trips/{date}", s.handleUpsertTrip)
			r.Delete("/trips/{date}", s.handleDeleteTrip)

			r.Put("/fees", s.handleUpdateFeeSchedule)

			r.Post("/settlements/manual", s.handleComputeManual)
			r.Post("/settlements/snapshots", s.handleSaveSnapshot)
			r.Delete("/settlements/snapshots/{id}", s.handleDeleteSnapshot)
		})
	})

	return r
}
