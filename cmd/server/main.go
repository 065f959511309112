// Career Compass - career assistance web application server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/vedika48/career-compass/internal/api"
	"github.com/vedika48/career-compass/internal/auth"
	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/chat"
	"github.com/vedika48/career-compass/internal/config"
	"github.com/vedika48/career-compass/internal/jobs"
	"github.com/vedika48/career-compass/internal/middleware"
	"github.com/vedika48/career-compass/internal/resume"
	"github.com/vedika48/career-compass/internal/salary"
	"github.com/vedika48/career-compass/internal/store"
	"github.com/vedika48/career-compass/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "backend", cfg.BackendURL, "dev", cfg.IsDevelopment())

	// Initialize the client-state store. DATABASE_URL selects Postgres,
	// otherwise a local SQLite file is used.
	var st store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.NewPostgres(cfg.DatabaseURL)
	} else {
		st, err = store.NewSQLite(cfg.DBPath)
	}
	if err != nil {
		slog.Error("Failed to initialize client-state store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("Failed to close store", "error", closeErr)
		}
	}()

	if err := st.Ping(context.Background()); err != nil {
		slog.Error("Store health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Client-state store connected")

	// Initialize the backend client and application components.
	backend := careerapi.NewClient(cfg.BackendURL, logger)

	authMgr := auth.NewManager(st, backend, logger)
	authMgr.Restore(context.Background())
	if session := authMgr.Current(); session.LoggedIn() {
		slog.Info("Session restored", "user", session.User.Email)
	}

	identity := func(ctx context.Context) (token, userID string) {
		if session := authMgr.Current(); session.LoggedIn() {
			return session.Token, session.User.ID
		}
		return "", authMgr.ClientID(ctx)
	}
	chatSession := chat.NewSession(backend, identity, logger)
	jobsPanel := jobs.NewPanel(backend, authMgr.Token, logger)

	builder, err := resume.NewBuilder(backend, authMgr.Token)
	if err != nil {
		slog.Error("Failed to initialize resume builder", "error", err)
		os.Exit(1)
	}
	negotiator, err := salary.NewNegotiator(backend, authMgr.Token, logger)
	if err != nil {
		slog.Error("Failed to initialize salary negotiator", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(authMgr, chatSession, jobsPanel, builder, negotiator, logger)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	handler.RegisterAuthRoutes(r)
	handler.RegisterChatRoutes(r)
	handler.RegisterJobRoutes(r)
	handler.RegisterResumeRoutes(r)
	handler.RegisterSalaryRoutes(r)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
