package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/config"
	"github.com/justsurfingit/jobboard/internal/database"
	"github.com/justsurfingit/jobboard/internal/handlers"
	"github.com/justsurfingit/jobboard/internal/logging"
	"github.com/justsurfingit/jobboard/internal/services"
	"github.com/justsurfingit/jobboard/internal/sessionstore"
	"github.com/justsurfingit/jobboard/internal/validation"
	"github.com/justsurfingit/jobboard/internal/wizard"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Environment Variables
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New(os.Stderr, "info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage: database tables, or process memory for local runs
	var (
		backend   sessionstore.Backend
		purger    sessionstore.Purger
		registrar wizard.Registrar
	)
	if cfg.DatabaseDriver == config.DriverMemory {
		memory := sessionstore.NewMemoryBackend()
		backend, purger = memory, memory
		log.Warn().Msg("memory driver: completed signups are not registered")
	} else {
		db, err := database.Connect(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("connect database")
		}
		gormBackend := sessionstore.NewGormBackend(db)
		backend, purger = gormBackend, gormBackend
		registrar = services.NewRegistrationService(db)
	}

	// 3. Initialize the wizard
	gate, err := validation.NewDefaultGate()
	if err != nil {
		log.Fatal().Err(err).Msg("build validation gate")
	}
	sessions := handlers.NewSessions(newControllerFactory(cfg, log, gate, backend, registrar))
	sessionstore.StartJanitor(ctx, cfg.JanitorInterval, cfg.SnapshotTTL, log, purger, sessions)

	// 4. Setup Router & CORS
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(log))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true // For development only
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 5. Define Routes
	signupHandler := handlers.NewSignupHandler(sessions, cfg.MaxResumeBytes, cfg.SecureCookies, log)
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		signupHandler.Register(api)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newControllerFactory(cfg config.Config, log zerolog.Logger, gate wizard.Gate, backend sessionstore.Backend, registrar wizard.Registrar) handlers.ControllerFactory {
	return func(sessionID string) *wizard.Controller {
		sessionLog := log.With().Str("session", sessionID).Logger()
		store := sessionstore.New(backend.Session(sessionID),
			sessionstore.WithTTL(cfg.SnapshotTTL),
			sessionstore.WithLogger(sessionLog),
		)
		opts := []wizard.Option{wizard.WithLogger(sessionLog)}
		if registrar != nil {
			opts = append(opts, wizard.WithRegistrar(registrar))
		}
		return wizard.NewController(gate, store, opts...)
	}
}
