// Package scoring computes opportunity scores for raw candidate events.
package scoring

import "time"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock sets the time source used for lead-time rules.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCompanies replaces the reference company list. Names are normalized
// the same way host names are at check time.
func WithCompanies(names []string) Option {
	return func(e *Engine) {
		if len(names) > 0 {
			e.companies = normalizeAll(names)
		}
	}
}
