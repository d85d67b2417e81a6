package repository

import "time"

// Option applies a configuration option to a FileSource.
type Option func(*FileSource)

// WithSnapshotStore makes the source read matchups from store, falling back to
// the matchup file when the store holds none.
func WithSnapshotStore(store *SQLiteStore) Option {
	return func(s *FileSource) {
		s.store = store
	}
}

// WatchOption applies a configuration option to a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle before
// firing. Editors and the sync job often write a file in several steps.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}
