package stratz

import "errors"

// Sentinel kinds for upstream errors.
var (
	ErrMissingToken = errors.New("stratz: missing API token")
	ErrUpstream     = errors.New("stratz: upstream error")
	ErrShape        = errors.New("stratz: unexpected response shape")
)
