package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotReady     = errors.New("service not started")
	ErrInvalidLimit = errors.New("limit must not be negative")
)
