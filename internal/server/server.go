package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/bootstrap"
	"github.com/tadreeb/academy/internal/config"
	"github.com/tadreeb/academy/internal/db"
)

// TokenJanitorInterval is how often expired admin refresh tokens are purged
const TokenJanitorInterval = time.Hour

// Options tune startup
type Options struct {
	// Migrate applies pending migrations before serving
	Migrate bool
	// Seed inserts the static catalog before serving
	Seed bool
}

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	logger   zerolog.Logger
	http     *http.Server

	cancelJobs context.CancelFunc
	jobs       sync.WaitGroup
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(cfg *config.Config, lgr zerolog.Logger, opts Options) (*Server, error) {
	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if opts.Migrate {
		if err := bootstrap.RunMigrations(ctx, database, lgr); err != nil {
			database.Close()
			return nil, err
		}
	}

	if opts.Seed {
		if _, err := bootstrap.SeedCatalog(ctx, database, lgr); err != nil {
			// a partially seeded catalog still serves
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router, err := bootstrap.SetupRouter(cfg, deps, lgr)
	if err != nil {
		deps.FormLimiter.Stop()
		database.Close()
		return nil, fmt.Errorf("failed to setup router: %w", err)
	}

	setupStaticFileServing(router, deps.FileStorage.BasePath(), cfg.Server.StaticDir, lgr)

	return &Server{
		config:   cfg,
		router:   router,
		database: database,
		deps:     deps,
		logger:   lgr,
	}, nil
}

// Run starts the HTTP server and background jobs and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  config.Duration(s.config.Server.ReadTimeout),
		WriteTimeout: config.Duration(s.config.Server.WriteTimeout),
		IdleTimeout:  120 * time.Second,
	}

	jobsCtx, cancel := context.WithCancel(context.Background())
	s.cancelJobs = cancel
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		services.RunTokenJanitor(jobsCtx, s.deps.AdminAuthService, TokenJanitorInterval, s.logger.With().Str("component", "token_janitor").Logger())
	}()

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	if err := s.Shutdown(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := config.Duration(s.config.Server.ShutdownTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.cancelJobs != nil {
		s.cancelJobs()
		s.jobs.Wait()
	}
	s.deps.FormLimiter.Stop()

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
