package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrUnknownHero   = errors.New("unknown hero")
	ErrDuplicatePick = errors.New("hero picked more than once")
	ErrDuplicateHero = errors.New("duplicate hero entry")
	ErrEmptyName     = errors.New("empty hero name")
	ErrIncomplete    = errors.New("incomplete dataset")
)
