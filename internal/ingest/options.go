package ingest

import (
	"github.com/okian/heropick/internal/adapters/repository"
	"github.com/okian/heropick/pkg/logger"
)

// Option configures a Syncer.
type Option func(*Syncer)

// WithPaths sets the catalog, pool and matchup files.
func WithPaths(catalogPath, poolPath, matchupsPath string) Option {
	return func(s *Syncer) {
		if catalogPath != "" {
			s.catalogPath = catalogPath
		}
		if poolPath != "" {
			s.poolPath = poolPath
		}
		if matchupsPath != "" {
			s.matchupsPath = matchupsPath
		}
	}
}

// WithStore also writes the fetched data into the snapshot store.
func WithStore(store *repository.SQLiteStore) Option {
	return func(s *Syncer) {
		s.store = store
	}
}

// WithWorkers sets how many jobs are fetched concurrently. The provider's
// rate limiter still bounds the request rate.
func WithWorkers(n int) Option {
	return func(s *Syncer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithQueueSize sets the job queue capacity. It is raised to the pool size
// when smaller.
func WithQueueSize(n int) Option {
	return func(s *Syncer) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}
