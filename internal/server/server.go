package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/beatrizzfernandes/gestao-equipamentos/config"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/handlers"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/notify"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/services"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
)

// Server wires the storage backend, the notification gateway and the HTTP
// surface together.
type Server struct {
	httpServer *http.Server
	backend    store.Backend
	notifier   *notify.Notifier
	ledger     *services.LedgerService
	log        *zap.Logger
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*Server, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage backend: %w", err)
	}

	notifier, err := notify.Open(cfg.Notifier, log)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("open notifier backend: %w", err)
	}

	users := services.NewUserService(backend)
	catalog := services.NewCatalogService(backend)
	ledger := services.NewLedgerService(backend, notifier, log)
	maintenance := services.NewMaintenanceService(backend, notifier, cfg.Notifier.SupportAddress)
	reports := services.NewReportsService(backend)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", handlers.Healthz)
	r.Mount("/auth", handlers.NewAuthHandler(users, []byte(secret)).Router())

	maintenanceHandler := handlers.NewMaintenanceHandler(maintenance, users)
	r.Group(func(authed chi.Router) {
		authed.Use(handlers.RequireAuth([]byte(secret)))
		authed.Mount("/equipment", handlers.NewEquipmentHandler(catalog, users).Router())
		authed.Mount("/resources", handlers.NewResourceHandler(catalog, users).Router())
		authed.Mount("/reservations", handlers.NewReservationHandler(ledger, users).Router())
		authed.Mount("/loans", handlers.NewLoanHandler(ledger).Router())
		authed.Mount("/maintenance", maintenanceHandler.Router())
		authed.Post("/support", maintenanceHandler.Support)
		authed.Mount("/reports", handlers.NewReportsHandler(reports).Router())
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
			Handler: r,
		},
		backend:  backend,
		notifier: notifier,
		ledger:   ledger,
		log:      log,
	}, nil
}

// Start runs the due-date sweep once, then serves until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	alerts, err := s.ledger.CheckPending(ctx)
	if err != nil {
		s.log.Warn("startup due-date sweep failed", zap.Error(err))
	} else {
		s.log.Info("startup due-date sweep", zap.Int("alerts", len(alerts)))
	}

	s.log.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if cerr := s.notifier.Close(); err == nil {
		err = cerr
	}
	if cerr := s.backend.Close(); err == nil {
		err = cerr
	}
	return err
}
