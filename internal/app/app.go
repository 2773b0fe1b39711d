// Package app wires configuration, storage, services and the HTTP server
// into a running application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql, used by goose
	"github.com/pressly/goose/v3"

	jwtauth "github.com/conceptdost/conceptdost-backend/internal/auth"
	"github.com/conceptdost/conceptdost-backend/internal/config"
	"github.com/conceptdost/conceptdost-backend/migrations"

	"github.com/conceptdost/conceptdost-backend/internal/adapter/postgres"
	historyrepo "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/history"
	quotarepo "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/quota"
	savedcardrepo "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/savedcard"
	tokenrepo "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/token"
	userrepo "github.com/conceptdost/conceptdost-backend/internal/adapter/postgres/user"
	"github.com/conceptdost/conceptdost-backend/internal/adapter/provider/claude"

	authservice "github.com/conceptdost/conceptdost-backend/internal/service/auth"
	collectionservice "github.com/conceptdost/conceptdost-backend/internal/service/collection"
	generationservice "github.com/conceptdost/conceptdost-backend/internal/service/generation"
	quotaservice "github.com/conceptdost/conceptdost-backend/internal/service/quota"

	"github.com/conceptdost/conceptdost-backend/internal/transport/middleware"
	"github.com/conceptdost/conceptdost-backend/internal/transport/rest"
)

const tokenCleanupInterval = time.Hour

// Run is the application entry point. It blocks until ctx is cancelled or
// the HTTP server fails, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := migrateUp(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	quotas := quotarepo.New(pool)
	history := historyrepo.New(pool)
	saved := savedcardrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	jwtMgr := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	llm := claude.New(cfg.LLM, logger)

	authSvc := authservice.NewService(logger, users, tokens,
		ownedCollections{history: history, saved: saved}, txm, jwtMgr, cfg.Auth)
	quotaSvc := quotaservice.NewService(logger, quotas, cfg.Guest.Limit)
	generationSvc := generationservice.NewService(logger, llm, quotaSvc, history)
	collectionSvc := collectionservice.NewService(logger, history, saved, txm)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handlers := rest.Handlers{
		Auth:       rest.NewAuthHandler(authSvc, logger),
		Generate:   rest.NewGenerateHandler(generationSvc, logger),
		Guest:      rest.NewGuestHandler(quotaSvc, logger),
		History:    rest.NewHistoryHandler(collectionSvc, logger),
		SavedCards: rest.NewSavedCardsHandler(collectionSvc, logger),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
	}

	router := rest.NewRouter(handlers, rest.RouterDeps{
		Validator: authSvc,
		Limiter:   limiter,
		Server:    cfg.Server,
		CORS:      cfg.CORS,
		Logger:    logger,
	})

	go cleanupExpiredTokens(ctx, logger, authSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// migrateUp applies the embedded goose migrations. goose needs *sql.DB, so
// a short-lived stdlib connection is opened alongside the pgx pool.
func migrateUp(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// cleanupExpiredTokens periodically removes refresh tokens past their
// expiry so the table does not grow without bound.
func cleanupExpiredTokens(ctx context.Context, logger *slog.Logger, svc *authservice.Service) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.CleanupExpiredTokens(ctx)
			if err != nil {
				logger.Warn("token cleanup failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				logger.Info("expired refresh tokens removed", slog.Int("count", n))
			}
		}
	}
}
