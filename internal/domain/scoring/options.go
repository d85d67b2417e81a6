package scoring

import "github.com/okian/heropick/internal/domain/model"

// Option configures an Engine.
type Option func(*Engine)

// WithWeights replaces the component weights. Non-finite weights are rejected
// by New.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithComfortTable replaces the comfort multipliers. An empty table keeps the
// defaults.
func WithComfortTable(t model.ComfortTable) Option {
	return func(e *Engine) {
		if len(t) > 0 {
			e.comfort = t
		}
	}
}

// WithoutMatchups zeroes the synergy, counter and countered-by terms, leaving
// the role component and the comfort multiplier. Used when no matchup data is
// available.
func WithoutMatchups() Option {
	return func(e *Engine) {
		e.useMatchups = false
	}
}

// WithMatchups toggles matchup terms explicitly; handy when the flag comes
// from configuration.
func WithMatchups(enabled bool) Option {
	return func(e *Engine) {
		e.useMatchups = enabled
	}
}
