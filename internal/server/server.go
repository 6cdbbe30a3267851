// Package server provides the HTTP server initialization and route
// registration.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/DenisMurerwa/EBU/internal/config"
	"github.com/DenisMurerwa/EBU/internal/handler"
	"github.com/DenisMurerwa/EBU/internal/pkg/db"
	"github.com/DenisMurerwa/EBU/internal/service"
)

// Server wraps the HTTP server with application dependencies.
type Server struct {
	cfg     *config.Config
	httpSrv *http.Server
	pool    *db.Pool

	authService        *service.AuthService
	ledgerService      *service.LedgerService
	leaderboardService *service.LeaderboardService

	// Handlers
	authHandler        *handler.AuthHandler
	leaderboardHandler *handler.LeaderboardHandler
	salesHandler       *handler.SalesHandler
}

// Dependencies holds all the dependencies needed by the server handlers.
type Dependencies struct {
	Config             *config.Config
	Pool               *db.Pool
	AuthService        *service.AuthService
	LedgerService      *service.LedgerService
	LeaderboardService *service.LeaderboardService
}

// New creates a new Server instance with the given dependencies.
func New(deps *Dependencies) *Server {
	s := &Server{
		cfg:                deps.Config,
		pool:               deps.Pool,
		authService:        deps.AuthService,
		ledgerService:      deps.LedgerService,
		leaderboardService: deps.LeaderboardService,
	}

	// Initialize handlers
	s.authHandler = handler.NewAuthHandler(deps.AuthService)
	s.leaderboardHandler = handler.NewLeaderboardHandler(deps.LeaderboardService)
	s.salesHandler = handler.NewSalesHandler(deps.LedgerService, deps.LeaderboardService)

	s.httpSrv = &http.Server{
		Addr:         deps.Config.Server.Addr(),
		Handler:      s.router(),
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
	}

	return s
}

// router builds the route table. Authenticated routes sit behind the auth
// middleware; sales submission and user listing additionally require the
// admin flag.
func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(RecoveryMiddleware)
	r.Use(LoggingMiddleware)

	// Public
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", s.authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.authHandler.Login).Methods(http.MethodPost)

	// Authenticated
	authed := r.PathPrefix("/").Subrouter()
	authed.Use(AuthMiddleware(s.authService))
	authed.HandleFunc("/auth/logout", s.authHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/auth/me", s.authHandler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/leaderboard", s.leaderboardHandler.GetLeaderboard).Methods(http.MethodGet)
	authed.HandleFunc("/leaderboard/me", s.leaderboardHandler.GetMyStanding).Methods(http.MethodGet)

	// Admin only
	admin := authed.PathPrefix("/").Subrouter()
	admin.Use(AdminMiddleware)
	admin.HandleFunc("/sales", s.salesHandler.RecordSale).Methods(http.MethodPost)
	admin.HandleFunc("/sales/entries", s.salesHandler.ListMonthEntries).Methods(http.MethodGet)
	admin.HandleFunc("/sales/users/{id}/entries", s.salesHandler.ListUserEntries).Methods(http.MethodGet)
	admin.HandleFunc("/users", s.authHandler.ListUsers).Methods(http.MethodGet)

	return r
}

// handleHealth reports server and database health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unhealthy"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

// Start runs the HTTP server. Blocks until the server stops.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpSrv.Addr).Msg("HTTP server starting")
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully, letting in-flight requests finish
// within the configured shutdown timeout.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
		return
	}
	log.Info().Msg("HTTP server stopped gracefully")
}
