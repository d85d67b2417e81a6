// Package repository loads and saves the hero catalog, the comfort pool and
// the matchup table.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/okian/heropick/internal/domain/catalog"
)

// Where matchups were read from.
const (
	MatchupsFromStore = "sqlite"
	MatchupsFromFile  = "file"
	MatchupsNone      = "none"
)

// Snapshot is one load of the data set.
type Snapshot struct {
	catalog.Dataset
	MatchupsFrom string
}

// Source provides the data set the recommender runs on.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}

// FileSource reads the catalog and the pool from files and the matchups from
// the snapshot store or the matchup file.
type FileSource struct {
	catalogPath  string
	poolPath     string
	matchupsPath string
	store        *SQLiteStore
}

// NewFileSource creates a source over the three data files.
func NewFileSource(catalogPath, poolPath, matchupsPath string, opts ...Option) *FileSource {
	s := &FileSource{
		catalogPath:  catalogPath,
		poolPath:     poolPath,
		matchupsPath: matchupsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paths returns the files the source reads, for watching.
func (s *FileSource) Paths() []string {
	return []string{s.catalogPath, s.poolPath, s.matchupsPath}
}

// Load reads and validates the data set. A missing matchup file is not an
// error: the data set then carries an empty table.
func (s *FileSource) Load(ctx context.Context) (Snapshot, error) {
	c, err := LoadCatalog(s.catalogPath)
	if err != nil {
		return Snapshot{}, err
	}
	p, err := LoadPool(s.poolPath)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Dataset: catalog.Dataset{Catalog: c, Pool: p}}
	if s.store != nil {
		records, err := s.store.LoadMatchups(ctx)
		if err != nil {
			return Snapshot{}, err
		}
		if len(records) > 0 {
			snap.Matchups = catalog.NewMatchupTable(records)
			snap.MatchupsFrom = MatchupsFromStore
		}
	}
	if snap.Matchups == nil {
		m, err := LoadMatchups(s.matchupsPath)
		switch {
		case err == nil:
			snap.Matchups = m
			snap.MatchupsFrom = MatchupsFromFile
		case errors.Is(err, fs.ErrNotExist):
			snap.Matchups = catalog.NewMatchupTable(nil)
			snap.MatchupsFrom = MatchupsNone
		default:
			return Snapshot{}, err
		}
	}

	if err := snap.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return snap, nil
}
