package app

import (
	"time"

	"github.com/thebeat/pipeline/internal/adapters/storage"
	"github.com/thebeat/pipeline/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of generation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the generation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDataFile points the service at a shared store file.
func WithDataFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
	}
}

// WithBackend injects a storage backend, bypassing the file store and its
// watcher. Used by tests.
func WithBackend(backend storage.Backend) Option {
	return func(s *Service) {
		if backend != nil {
			s.backend = backend
		}
	}
}

// WithCollaborator injects a text-generation collaborator.
func WithCollaborator(c Collaborator) Option {
	return func(s *Service) {
		if c != nil {
			s.collab = c
		}
	}
}

// WithAPIKey sets the completion endpoint credential.
func WithAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// WithAPIBaseURL points at an OpenAI-compatible endpoint.
func WithAPIBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.apiBaseURL = url
		}
	}
}

// WithModel selects the completion model.
func WithModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.model = model
		}
	}
}

// WithAPITimeout bounds each completion request.
func WithAPITimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.apiTimeout = d
		}
	}
}

// WithDefaultCity seeds scans and venue research when a request names none.
func WithDefaultCity(city string) Option {
	return func(s *Service) {
		if city != "" {
			s.defaultCity = city
		}
	}
}

// WithClock injects the time source for scoring, ingestion and lifecycle.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc injects the identifier source.
func WithIDFunc(fn func(prefix string) string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}
