package ranking

import "errors"

// ErrNoScorer is returned by New when no engine is supplied.
var ErrNoScorer = errors.New("ranking: engine is required")

// ErrDatasetMismatch is returned by New when the engine was built over a
// different data set.
var ErrDatasetMismatch = errors.New("ranking: engine built over a different data set")
