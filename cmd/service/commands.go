package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github-signal-sync/internal/api"
	"github-signal-sync/internal/config"
	"github-signal-sync/internal/database"
	custom_errors "github-signal-sync/internal/errors"
	"github-signal-sync/internal/errutil"
	"github-signal-sync/internal/github"
	"github-signal-sync/internal/logging"
	"github-signal-sync/internal/model"
	"github-signal-sync/internal/syncer"
)

// app holds the components every command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	dbpool *pgxpool.Pool
	syncer *syncer.Syncer
}

// setup loads configuration, applies migrations and wires the syncer.
func setup(ctx context.Context) (*app, func(), error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if err := errutil.Configure(cfg.SentryDSN, cfg.SentryEnv, logger); err != nil {
		return nil, nil, fmt.Errorf("failed to configure sentry: %w", err)
	}

	if err := database.Migrate(cfg.DBURL); err != nil {
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connection established")

	ghClient, err := github.NewClient(github.Options{
		Token:             cfg.GithubToken,
		AppID:             cfg.GithubAppID,
		AppInstallationID: cfg.GithubAppInstallationID,
		AppPrivateKey:     cfg.GithubAppPrivateKey,
		BaseURL:           cfg.GithubAPIURL,
		PageSize:          cfg.GithubPageSize,
		RequestTimeout:    cfg.GithubRequestTimeout,
	}, logger)
	if err != nil {
		dbpool.Close()
		return nil, nil, fmt.Errorf("failed to create github client: %w", err)
	}

	cleanup := func() {
		dbpool.Close()
		errutil.Flush()
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		dbpool: dbpool,
		syncer: syncer.NewSyncer(dbpool, ghClient, logger),
	}, cleanup, nil
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	logger.Info("Configuration loaded successfully", slog.Any("config", cfg))

	return cfg, logger, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API and, when SYNC_INTERVAL is set, the periodic sync",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			a, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var wg sync.WaitGroup
			if a.cfg.SyncInterval > 0 {
				if a.cfg.DefaultRepo.IsZero() {
					a.logger.Warn("SYNC_INTERVAL is set but GITHUB_REPOSITORY is not, periodic sync disabled")
				} else {
					wg.Add(1)
					go func() {
						defer wg.Done()
						a.syncer.Start(ctx, a.cfg.DefaultRepo, a.cfg.SyncInterval)
					}()
				}
			}

			httpServer := &http.Server{
				Addr:              a.cfg.HTTPAddr,
				Handler:           api.NewRouter(a.syncer, a.cfg.DefaultRepo, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				a.logger.Info("Starting HTTP server", "addr", a.cfg.HTTPAddr)
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case err := <-serverErr:
				return fmt.Errorf("http server failed: %w", err)
			case <-ctx.Done():
				a.logger.Info("Shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down http server: %w", err)
			}
			wg.Wait()
			a.logger.Info("Shutdown complete")
			return nil
		},
	}
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync one repository once and print the stored counts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "repo",
				Usage: "Repository as owner/name, defaults to GITHUB_REPOSITORY",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			a, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveRepo(c.String("repo"), a.cfg.DefaultRepo)
			if err != nil {
				return err
			}

			result, err := a.syncer.Sync(ctx, id)
			if err != nil {
				errutil.HandleError(ctx, a.logger, "Sync failed", err)
				return err
			}

			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if err := database.Migrate(cfg.DBURL); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}
			logger.Info("Database migrations applied successfully")
			return nil
		},
	}
}

// resolveRepo picks the repository named by flag, falling back to the configured default.
func resolveRepo(flag string, defaultRepo model.RepoIdentifier) (model.RepoIdentifier, error) {
	if flag != "" {
		return model.ParseRepoIdentifier(flag)
	}
	if defaultRepo.IsZero() {
		return model.RepoIdentifier{}, custom_errors.ErrNoDefaultRepository
	}
	return defaultRepo, nil
}
