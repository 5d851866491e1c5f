// Package lifecycle enforces the entity status machines.
package lifecycle

import "time"

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithClock sets the time source used for outreach stamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDFunc overrides identifier generation for promoted records.
func WithIDFunc(fn func(prefix string) string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}
