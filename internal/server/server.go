package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robotteam/clubserver/config"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/db"
	"github.com/robotteam/clubserver/internal/handlers"
	"github.com/robotteam/clubserver/internal/mq"
	"github.com/robotteam/clubserver/internal/services"
	"github.com/robotteam/clubserver/internal/storage"
	"github.com/robotteam/clubserver/internal/store"
	"github.com/robotteam/clubserver/types"
)

// Server wraps the HTTP server, router and the collaborators it owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	events     *mq.MQ
	services   handlers.Services
}

// New connects the record store, blob store and event feed and builds the
// router.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	blobs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("ensure bucket %s: %w", blobs.Bucket(), err)
	}

	events, err := mq.NewFromConfig(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init mq: %w", err)
	}

	svc := NewServices(dbConn, blobs, mq.NewPublisher(events, cfg.MQ.Channel))

	codec := auth.NewTokenCodec(cfg.SigningSecret(), cfg.Auth.TokenTTL)
	cookie := auth.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}
	resolver := auth.NewResolver(codec, cookie, svc.Users)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		handlers.RequestLogger,
		middleware.Timeout(5*time.Minute),
		resolver.Middleware,
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.Mount(r, svc, codec, cookie)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	// Uploads of up to 100 MiB need more than the usual read budget.
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		events:     events,
		services:   svc,
	}, nil
}

// NewServices builds every use-case on top of the given collaborators.
func NewServices(dbConn *sql.DB, blobs services.BlobStore, events *mq.Publisher) handlers.Services {
	settingsRepo := store.NewRobotSettingsRepository(dbConn)

	return handlers.Services{
		Users:         services.NewUserService(store.NewUserRepository(dbConn), events),
		Trials:        services.NewTrialTimeService(store.NewTrialTimeRepository(dbConn), settingsRepo),
		RobotSettings: services.NewRobotSettingsService(settingsRepo),
		Videos:        services.NewMediaService(types.MediaVideo, store.NewMediaRepository(dbConn, types.MediaVideo), blobs, events),
		Photos:        services.NewMediaService(types.MediaPhoto, store.NewMediaRepository(dbConn, types.MediaPhoto), blobs, events),
		Announcements: services.NewAnnouncementService(store.NewAnnouncementRepository(dbConn)),
		Notes:         services.NewNoteService(store.NewNoteRepository(dbConn)),
		AdminMessages: services.NewAdminMessageService(store.NewAdminMessageRepository(dbConn), events),
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Users exposes the account service, used for seeding at startup.
func (s *Server) Users() *services.UserService {
	return s.services.Users
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	log.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases collaborators.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.events != nil {
		if closeErr := s.events.Close(); closeErr != nil {
			log.Warn("failed to close event feed", "error", closeErr)
		}
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}
