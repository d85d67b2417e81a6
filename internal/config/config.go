// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CatalogPath  string `koanf:"catalog_path"`
	PoolPath     string `koanf:"pool_path"`
	MatchupsPath string `koanf:"matchups_path"`

	// DBPath enables the SQLite snapshot store when set.
	DBPath string `koanf:"db_path"`

	// WatchData reloads the data set when a data file changes.
	WatchData     bool          `koanf:"watch_data"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// DesiredRoles is the default role list for a draft.
	DesiredRoles []string `koanf:"desired_roles"`

	// ComfortMultipliers maps comfort level names to score multipliers.
	ComfortMultipliers map[string]float64 `koanf:"comfort_multipliers"`

	WeightRole        float64 `koanf:"weight_role"`
	WeightSynergy     float64 `koanf:"weight_synergy"`
	WeightCounter     float64 `koanf:"weight_counter"`
	WeightCounteredBy float64 `koanf:"weight_countered_by"`

	// UseMatchups switches the synergy and counter terms on.
	UseMatchups bool `koanf:"use_matchups"`

	// ScoringParallelism is the number of goroutines scoring candidates.
	ScoringParallelism int `koanf:"scoring_parallelism"`

	// CacheSize bounds the recommendation cache; <= 0 disables it.
	CacheSize int `koanf:"cache_size"`

	// DefaultTopN and MaxTopN bound the number of suggestions returned.
	DefaultTopN int `koanf:"default_top_n"`
	MaxTopN     int `koanf:"max_top_n"`

	StratzURL   string  `koanf:"stratz_url"`
	StratzToken string  `koanf:"stratz_token"`
	StratzRPS   float64 `koanf:"stratz_rps"`
	StratzBurst int     `koanf:"stratz_burst"`

	SyncWorkers   int `koanf:"sync_workers"`
	SyncQueueSize int `koanf:"sync_queue_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		ShutdownTimeout: 10 * time.Second,
		CatalogPath:     "data/hero_tags.json",
		PoolPath:        "config/hero_pool.json",
		MatchupsPath:    "data/hero_synergy_matchups.json",
		WatchDebounce:   250 * time.Millisecond,
		DesiredRoles:    []string{"Frontliner", "Disabler", "Initiator", "Tower Push", "Wave Clear"},
		ComfortMultipliers: map[string]float64{
			"very_comfortable": 1.3,
			"comfortable":      1.2,
			"ok":               1.1,
			"learning":         1.0,
		},
		WeightRole:         1.0,
		WeightSynergy:      1.2,
		WeightCounter:      1.5,
		WeightCounteredBy:  1.0,
		UseMatchups:        true,
		ScoringParallelism: 1,
		CacheSize:          1024,
		DefaultTopN:        5,
		MaxTopN:            50,
		StratzURL:          "https://api.stratz.com/graphql",
		StratzRPS:          1,
		StratzBurst:        1,
		SyncWorkers:        2,
		SyncQueueSize:      256,
	}
}

// Validate checks the values a server needs.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CatalogPath == "" || c.PoolPath == "" || c.MatchupsPath == "":
		return fmt.Errorf("%w: data paths must not be empty", ErrInvalidConfig)
	case c.DefaultTopN < 1:
		return fmt.Errorf("%w: default_top_n must be at least 1", ErrInvalidConfig)
	case c.MaxTopN < c.DefaultTopN:
		return fmt.Errorf("%w: max_top_n must not be below default_top_n", ErrInvalidConfig)
	case len(c.DesiredRoles) == 0:
		return fmt.Errorf("%w: desired_roles must not be empty", ErrInvalidConfig)
	case c.WeightRole < 0 || c.WeightSynergy < 0 || c.WeightCounter < 0 || c.WeightCounteredBy < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidConfig)
	case c.StratzRPS <= 0 || c.StratzBurst < 1:
		return fmt.Errorf("%w: stratz_rps and stratz_burst must be positive", ErrInvalidConfig)
	}
	for level, m := range c.ComfortMultipliers {
		if m < 0 {
			return fmt.Errorf("%w: comfort multiplier %q is negative", ErrInvalidConfig, level)
		}
	}
	return nil
}
