// cmd/colab/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dangerclosesec/colab"
	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/config"
	"github.com/dangerclosesec/colab/internal/database"
	"github.com/dangerclosesec/colab/internal/email"
	"github.com/dangerclosesec/colab/internal/github"
	"github.com/dangerclosesec/colab/internal/handler"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/dangerclosesec/colab/internal/scheduler"
	"github.com/dangerclosesec/colab/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ValidateSecrets(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(cfg.Database.URL, logger); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	apiClient, err := github.NewClient(&github.Config{
		BaseURL: cfg.GitHub.BaseURL,
		Token:   cfg.GitHub.Token,
		Timeout: cfg.GitHub.Timeout,
	})
	if err != nil {
		return fmt.Errorf("setting up github client: %w", err)
	}

	var githubClient github.MetadataClient = apiClient
	if cfg.GitHub.CacheTTL > 0 {
		cached := github.NewCachedClient(githubClient, cfg.GitHub.CacheTTL)
		cached.Start(ctx)
		defer cached.Close()
		githubClient = cached
	}

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)
	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.MaxAge, cfg.Session.Secure)

	svc := handler.Services{
		Users:       service.NewUserService(userRepo, githubClient, passwordHasher, tokenManager),
		Projects:    service.NewProjectService(projectRepo, userRepo, catalogRepo, githubClient),
		Catalog:     service.NewCatalogService(catalogRepo),
		Preferences: service.NewPreferenceService(preferenceRepo, catalogRepo),
	}

	reconciler := service.NewReconciliationService(projectRepo, userRepo, catalogRepo, githubClient, logger)
	reconciler.SetBatchSize(cfg.Scheduler.BatchSize)

	var alerts *service.AlertService
	if cfg.MailEnabled() {
		emailService, err := email.NewEmailService(cfg, email.ProviderFor(cfg))
		if err != nil {
			return fmt.Errorf("initializing email service: %w", err)
		}
		alerts = service.NewAlertService(projectRepo, preferenceRepo, emailService, cfg.BaseURL, cfg.Scheduler.AlertLookback, logger)
	} else {
		logger.Info("no mail provider configured, new project alerts disabled")
	}

	renderer, err := handler.NewRenderer(colab.TemplateFS, sessions)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(schedulerJobs(cfg, reconciler, alerts)...)
		jobs.SetLogger(logger)
		if err := jobs.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer jobs.Stop()
	}

	router := handler.NewRouter(svc, renderer, sessions, tokenManager, handler.CSRFConfig{
		Key:    auth.DeriveKey(cfg.Session.Secret, "csrf"),
		Secure: cfg.Session.Secure,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown started")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
