// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
//
// The service wires the shared store, the change bus, the generation queue
// and the collaborator together, and exposes one method per pipeline
// operation. All state lives in the store; the service itself only holds
// wiring.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/thebeat/pipeline/internal/adapters/bus"
	"github.com/thebeat/pipeline/internal/adapters/genai"
	"github.com/thebeat/pipeline/internal/adapters/mq/queue"
	"github.com/thebeat/pipeline/internal/adapters/mq/worker"
	"github.com/thebeat/pipeline/internal/adapters/storage"
	"github.com/thebeat/pipeline/internal/domain/ingest"
	"github.com/thebeat/pipeline/internal/domain/lifecycle"
	"github.com/thebeat/pipeline/internal/domain/scoring"
	"github.com/thebeat/pipeline/pkg/logger"
)

// Service implements the API dependencies for the pipeline system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *storage.Store
	backend   storage.Backend
	changeBus *bus.Bus
	watcher   *bus.Watcher
	genQueue  *queue.InMemoryQueue
	pool      *worker.Pool
	collab    Collaborator

	// Domain helpers
	engine    *scoring.Engine
	merger    *ingest.Merger
	lifecycle *lifecycle.Manager
	now       func() time.Time
	newID     func(prefix string) string

	// Configuration
	workerCount int
	queueSize   int
	dataFile    string
	apiKey      string
	apiBaseURL  string
	model       string
	apiTimeout  time.Duration
	defaultCity string

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 4,
		queueSize:   1024,
		apiTimeout:  60 * time.Second,
		defaultCity: "Nashville",
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.newID == nil {
		s.newID = func(prefix string) string { return ingest.NewIDAt(s.now(), prefix) }
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting pipeline service...")

	s.engine = scoring.New(scoring.WithClock(s.now))
	s.merger = ingest.New(
		ingest.WithClock(s.now),
		ingest.WithIDFunc(s.newID),
		ingest.WithEngine(s.engine),
	)
	s.lifecycle = lifecycle.New(
		lifecycle.WithClock(s.now),
		lifecycle.WithIDFunc(s.newID),
	)

	s.changeBus = bus.New()

	// A file backend is the default so separately started processes share
	// one store. Tests inject a memory backend and skip the watcher.
	if s.backend == nil {
		fb, err := storage.NewFileBackend(s.dataFile)
		if err != nil {
			return err
		}
		s.backend = fb
		watcher, err := bus.NewWatcher(fb.Path(), storage.AllKeys(), fb.Reload, s.changeBus)
		if err != nil {
			return err
		}
		s.watcher = watcher
	}
	s.store = storage.New(s.backend, storage.WithBus(s.changeBus))

	if s.collab == nil {
		s.collab = genai.New(s.apiKey,
			genai.WithBaseURL(s.apiBaseURL),
			genai.WithModel(s.model),
			genai.WithTimeout(s.apiTimeout),
		)
	}

	s.genQueue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
		queue.WithBufferSize(s.queueSize),
	)
	s.pool = worker.NewPool(s.workerCount, s.genQueue, s, s)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.pool.Start(runCtx)
	if s.watcher != nil {
		go s.watcher.Run(runCtx)
	}

	s.started = true
	s.logger.Info(ctx, "pipeline service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.String("dataFile", s.dataFile),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping pipeline service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.changeBus != nil {
		s.changeBus.Close()
	}

	s.started = false
	s.logger.Info(ctx, "pipeline service stopped")
}

// Subscribe returns a channel of collection change notifications. The
// returned cancel function releases the subscription.
func (s *Service) Subscribe(ctx context.Context) (<-chan bus.Change, func()) {
	return s.changeBus.Subscribe(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		stats["queueLength"] = s.genQueue.Len(context.Background())
		stats["subscribers"] = s.changeBus.Len()
	}

	return stats
}
