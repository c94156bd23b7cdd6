// Package app wires the configuration, storage, use case and HTTP layers
// together and runs the server until the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/shortlink/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/shortlink/internal/config"
	"github.com/vadimbarashkov/shortlink/internal/usecase"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortlink/internal/adapter/delivery/http"
	pg "github.com/vadimbarashkov/shortlink/pkg/postgres"
)

const serviceName = "url-shortener"

func loggerOptions(env string) httplog.Options {
	opts := httplog.Options{
		LogLevel: slog.LevelDebug,
		Concise:  true,
		Tags: map[string]string{
			"env": env,
		},
	}

	if env == config.EnvProd {
		opts.LogLevel = slog.LevelInfo
		opts.JSON = true
		opts.Concise = false
	}

	return opts
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := httplog.NewLogger(serviceName, loggerOptions(cfg.Env))

	db, err := pg.New(
		ctx,
		cfg.Postgres.DSN(),
		pg.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pg.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pg.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pg.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	version, err := pg.RunMigrations(cfg.MigrationsPath, cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}
	logger.Info("database is ready", slog.Uint64("schema_version", uint64(version)))

	urlRepo := postgres.NewURLRepository(db)
	urlUseCase := usecase.New(
		urlRepo,
		usecase.WithKeyLength(cfg.KeyLength),
		usecase.WithSecretKeyLength(cfg.SecretKeyLength),
		usecase.WithMaxRetries(cfg.MaxRetries),
	)
	router := delivery.NewRouter(logger, cfg.BaseURL, cfg.DocsPath, urlUseCase)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("addr", server.Addr), slog.String("base_url", cfg.BaseURL))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
