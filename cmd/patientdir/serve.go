package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/patientdir/internal/config"
	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
	logpkg "github.com/kailas-cloud/patientdir/internal/logger"
	"github.com/kailas-cloud/patientdir/internal/metrics"
	patientrepo "github.com/kailas-cloud/patientdir/internal/repository/patient"
	chiTransport "github.com/kailas-cloud/patientdir/internal/transport/chi"
	healthuc "github.com/kailas-cloud/patientdir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/patientdir/internal/usecase/search"
	"github.com/kailas-cloud/patientdir/internal/version"
)

// patientSource is what the composition root needs from a source driver.
type patientSource interface {
	Snapshot(ctx context.Context) ([]dompatient.Patient, error)
	Ping(ctx context.Context) error
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API server",
		Flags: []cli.Flag{
			envFlag(),
			&cli.StringFlag{
				Name:  "config",
				Usage: "Explicit config file (overrides config/<env>.yaml)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			env := c.String("env")
			var (
				cfg config.Config
				err error
			)
			if path := c.String("config"); path != "" {
				cfg, err = config.LoadFile(path)
			} else {
				cfg, err = config.Load(env)
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, env, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, env string, logger *zap.Logger) error {
	logger.Info("Starting patientdir API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_driver", cfg.Source.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterQueryMetrics()
	metrics.RegisterSourceMetrics()
	instruments := patientrepo.Instruments{
		Loads:   metrics.SourceLoadsTotal,
		Records: metrics.SourceRecords,
	}

	var (
		source   patientSource
		dbPinger healthuc.DBPinger
	)
	switch cfg.Source.Driver {
	case config.DriverRedis:
		store, err := newRedisStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("Connected to database", zap.Strings("db_addrs", cfg.Database.Addrs))

		source = patientrepo.NewRedisSource(
			store, cfg.Source.Key, time.Duration(cfg.Source.RefreshSec)*time.Second,
			instruments, logger.Named("source"),
		)
		dbPinger = store
	default:
		fileSource := patientrepo.NewFileSource(cfg.Source.Path, instruments, logger.Named("source"))
		// A missing file is not fatal: queries fail until it appears.
		if err := fileSource.Load(ctx); err != nil {
			logger.Warn("Initial data load failed", zap.String("path", cfg.Source.Path), zap.Error(err))
		}
		if cfg.Source.Watch {
			go func() {
				if err := fileSource.Watch(ctx); err != nil {
					logger.Error("Data file watcher stopped", zap.Error(err))
				}
			}()
		}
		source = fileSource
	}

	searchSvc := searchuc.New(source, logger)
	healthSvc := healthuc.New(source, dbPinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
