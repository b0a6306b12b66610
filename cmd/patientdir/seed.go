package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/patientdir/internal/config"
	"github.com/kailas-cloud/patientdir/internal/db"
	dbRedis "github.com/kailas-cloud/patientdir/internal/db/redis"
	logpkg "github.com/kailas-cloud/patientdir/internal/logger"
	patientrepo "github.com/kailas-cloud/patientdir/internal/repository/patient"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Copy a patient collection file into Redis",
		Flags: []cli.Flag{
			envFlag(),
			&cli.StringFlag{
				Name:  "file",
				Usage: "Patient collection JSON file",
				Value: filepath.Join("data", "data.json"),
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "Redis key (default: source.key from config)",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "Expire the key after this duration (0 keeps it forever)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(c.String("env"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			key := c.String("key")
			if key == "" {
				key = cfg.Source.Key
			}
			return runSeed(ctx, cfg, c.String("file"), key, c.Duration("ttl"))
		},
	}
}

func runSeed(ctx context.Context, cfg config.Config, file, key string, ttl time.Duration) error {
	logger, err := logpkg.NewLogger(logpkg.EnvCLI, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	store, err := newRedisStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := patientrepo.Seed(ctx, store, key, data, ttl)
	if err != nil {
		return err
	}
	logger.Warn("Seeded patient collection",
		zap.String("key", key),
		zap.Int("records", n),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// newRedisStore connects to Redis and waits until it answers.
func newRedisStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:       cfg.Database.Addrs,
		Username:    cfg.Database.Username,
		Password:    cfg.Database.Password,
		DB:          cfg.Database.DB,
		DialTimeout: time.Duration(cfg.Database.DialTimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis not ready: %w", err)
	}
	return store, nil
}
