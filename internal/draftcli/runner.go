// Package draftcli is the interactive front end: it reads both teams' picks,
// asks a Recommender for a report and prints it.
package draftcli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	service "github.com/okian/heropick/internal/app"
	"github.com/okian/heropick/internal/config"
	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/types"
	"github.com/okian/heropick/pkg/logger"
)

// ParsePicks splits a comma-separated line into trimmed hero names, dropping
// empty entries.
func ParsePicks(line string) []string {
	var out []string
	for _, p := range strings.Split(line, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewLocal builds and starts an in-process service from the config file. An
// empty path falls back to HEROPICK_CONFIG.
func NewLocal(ctx context.Context, configFile string) (*service.Service, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(ctx, configFile)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return nil, err
	}
	cfg.WatchData = false

	svc := service.New(service.OptionsFromConfig(cfg)...)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}

func retryable(err error) bool {
	return errors.Is(err, catalog.ErrUnknownHero) ||
		errors.Is(err, catalog.ErrDuplicatePick) ||
		errors.Is(err, catalog.ErrEmptyName)
}

func prompt(sc *bufio.Scanner, out io.Writer, question string) ([]string, error) {
	fmt.Fprintln(out, question)
	fmt.Fprint(out, "Comma-separated heroes: ")
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return nil, ErrNoInput
	}
	return ParsePicks(sc.Text()), nil
}

// Run prompts for the draft on in, prints the report on out and returns.
// Drafts naming unknown or repeated heroes are reported and asked again.
func Run(ctx context.Context, cfg *Config, rec Recommender, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to the Offlane Hero Picker!")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		team, err := prompt(sc, out, "Enter your team's picks (excluding yourself):")
		if err != nil {
			return err
		}
		enemy, err := prompt(sc, out, "Enter enemy team's known picks:")
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "\nAnalyzing team composition...")
		report, err := rec.Recommend(ctx, types.Request{
			Team:  team,
			Enemy: enemy,
			Roles: cfg.Roles,
			Limit: cfg.TopN,
		})
		if err != nil {
			if retryable(err) {
				logger.Get().Named("draftcli").Debug(ctx, "draft rejected", logger.Error(err))
				fmt.Fprintf(out, "\n%v\nPlease enter the picks again.\n\n", err)
				continue
			}
			return err
		}
		return Render(out, report)
	}
}
