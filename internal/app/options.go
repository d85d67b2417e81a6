package service

import (
	"time"

	"github.com/okian/heropick/internal/adapters/repository"
	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/scoring"
	"github.com/okian/heropick/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPaths sets the catalog, pool and matchup files.
func WithPaths(catalogPath, poolPath, matchupsPath string) Option {
	return func(s *Service) {
		s.catalogPath = catalogPath
		s.poolPath = poolPath
		s.matchupsPath = matchupsPath
	}
}

// WithDBPath enables the SQLite snapshot store.
func WithDBPath(path string) Option {
	return func(s *Service) {
		s.dbPath = path
	}
}

// WithSource replaces the file-backed data source.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithWatch reloads the data set when a data file changes.
func WithWatch(enabled bool, debounce time.Duration) Option {
	return func(s *Service) {
		s.watch = enabled
		s.watchDebounce = debounce
	}
}

// WithDesiredRoles sets the default role list.
func WithDesiredRoles(roles []string) Option {
	return func(s *Service) {
		if len(roles) > 0 {
			s.desiredRoles = append([]string(nil), roles...)
		}
	}
}

// WithComfortMultipliers sets comfort multipliers by level name.
func WithComfortMultipliers(raw map[string]float64) Option {
	return func(s *Service) {
		s.comfort = model.ComfortTableFromConfig(raw)
	}
}

// WithWeights sets the scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithMatchups toggles the matchup terms. They are also off while no matchup
// data is loaded.
func WithMatchups(enabled bool) Option {
	return func(s *Service) {
		s.useMatchups = enabled
	}
}

// WithParallelism sets how many goroutines score candidates.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithCacheSize bounds the recommendation cache; <= 0 disables it.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		s.cacheSize = n
	}
}

// WithTopN sets the default and maximum number of suggestions.
func WithTopN(def, maxN int) Option {
	return func(s *Service) {
		if def > 0 {
			s.defaultTopN = def
		}
		if maxN >= s.defaultTopN {
			s.maxTopN = maxN
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
