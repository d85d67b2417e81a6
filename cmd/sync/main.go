// Command sync refreshes the hero catalog and the matchup table from STRATZ.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/heropick/internal/adapters/repository"
	"github.com/okian/heropick/internal/adapters/stratz"
	"github.com/okian/heropick/internal/config"
	"github.com/okian/heropick/internal/ingest"
	"github.com/okian/heropick/pkg/logger"
)

func main() {
	configFile := flag.String("config", "", "Config file (default: $HEROPICK_CONFIG)")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFile(ctx, *configFile)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		logger.Get().Warn(ctx, "invalid logging config; keeping text/info", logger.Error(err))
	}

	res, err := run(ctx, cfg)
	if err != nil {
		logger.Get().Error(ctx, "sync failed", logger.Error(err))
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
}

func run(ctx context.Context, cfg *config.Config) (ingest.Result, error) {
	client, err := stratz.New(
		stratz.WithBaseURL(cfg.StratzURL),
		stratz.WithToken(cfg.StratzToken),
		stratz.WithRateLimit(cfg.StratzRPS, cfg.StratzBurst),
	)
	if err != nil {
		return ingest.Result{}, err
	}

	opts := []ingest.Option{
		ingest.WithPaths(cfg.CatalogPath, cfg.PoolPath, cfg.MatchupsPath),
		ingest.WithWorkers(cfg.SyncWorkers),
		ingest.WithQueueSize(cfg.SyncQueueSize),
	}
	if cfg.DBPath != "" {
		store, err := repository.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return ingest.Result{}, err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, ingest.WithStore(store))
	}

	syncer, err := ingest.New(client, opts...)
	if err != nil {
		return ingest.Result{}, err
	}
	return syncer.Run(ctx)
}
