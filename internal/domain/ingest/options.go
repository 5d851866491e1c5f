// Package ingest merges newly discovered raw records into existing collections.
package ingest

import (
	"time"

	"github.com/thebeat/pipeline/internal/domain/scoring"
)

// Option applies a configuration option to the Merger.
type Option func(*Merger)

// WithClock sets the time source used for identifiers and lead times.
func WithClock(now func() time.Time) Option {
	return func(m *Merger) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDFunc overrides identifier generation, mainly for tests that need
// stable ids.
func WithIDFunc(fn func(prefix string) string) Option {
	return func(m *Merger) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithEngine sets the scoring engine used for event batches.
func WithEngine(engine *scoring.Engine) Option {
	return func(m *Merger) {
		if engine != nil {
			m.engine = engine
		}
	}
}
