package scoring

import "errors"

// Sentinel errors returned by the engine.
var (
	ErrNilDataset     = errors.New("scoring: catalog is required")
	ErrInvalidWeights = errors.New("scoring: invalid weights")
)
