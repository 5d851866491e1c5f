// Package storage provides the key-addressed entity store.
package storage

import (
	"github.com/thebeat/pipeline/internal/adapters/bus"
	"github.com/thebeat/pipeline/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithBus attaches the change-notification bus; every successful save
// publishes the changed collection key.
func WithBus(b *bus.Bus) Option {
	return func(s *Store) {
		if b != nil {
			s.bus = b
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
