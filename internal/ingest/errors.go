package ingest

import "errors"

// Sentinel errors for the sync job.
var (
	ErrNoProvider = errors.New("no statistics provider")
	ErrNoHeroes   = errors.New("provider returned no heroes")
)
