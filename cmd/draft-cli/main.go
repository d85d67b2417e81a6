// Command draft-cli asks for a draft on the terminal and prints suggestions.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/heropick/internal/draftcli"
	"github.com/okian/heropick/pkg/logger"
)

const defaultTimeout = 10 * time.Second

func main() {
	var (
		baseURL    = flag.String("url", "", "Base URL of a running service; empty scores locally")
		configFile = flag.String("config", "", "Service config file for local mode (default: $HEROPICK_CONFIG)")
		topN       = flag.Int("top", 0, "Number of suggestions to show (default: service default)")
		roles      = flag.String("roles", "", "Comma-separated desired roles")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout in remote mode")
		logLevel   = flag.String("log-level", "warn", "Log level")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		draftcli.ShowHelp(os.Stdout)
		return
	}

	if err := draftcli.SetupLogging(*logLevel); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &draftcli.Config{
		BaseURL:    *baseURL,
		ConfigFile: *configFile,
		TopN:       *topN,
		Roles:      draftcli.ParsePicks(*roles),
		Timeout:    *timeout,
		LogLevel:   *logLevel,
	}

	var rec draftcli.Recommender
	if cfg.BaseURL != "" {
		rec = draftcli.NewRemoteClient(cfg.BaseURL, cfg.Timeout)
	} else {
		svc, err := draftcli.NewLocal(ctx, cfg.ConfigFile)
		if err != nil {
			logger.Get().Error(ctx, "failed to load data", logger.Error(err))
			os.Exit(1)
		}
		defer svc.Stop()
		rec = svc
	}

	if err := draftcli.Run(ctx, cfg, rec, os.Stdin, os.Stdout); err != nil {
		logger.Get().Error(ctx, "draft failed", logger.Error(err))
		os.Exit(1)
	}
}
