// Package service wires the matchday components together: fixture
// submissions are deduplicated, queued, simulated by a worker pool and
// recorded in the rating store.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/MaxTheDreaded/player-manager/internal/adapters/mq/queue"
	workerpool "github.com/MaxTheDreaded/player-manager/internal/adapters/mq/worker"
	repository "github.com/MaxTheDreaded/player-manager/internal/adapters/repository"
	"github.com/MaxTheDreaded/player-manager/internal/domain/dedupe"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
	"github.com/MaxTheDreaded/player-manager/internal/engine"
	"github.com/MaxTheDreaded/player-manager/pkg/logger"
	"github.com/MaxTheDreaded/player-manager/pkg/metrics"
)

// recordingStore wraps the rating store with write metrics.
type recordingStore struct {
	store repository.Store
}

func (r *recordingStore) Record(ctx context.Context, result model.RatingResult) error {
	start := time.Now()
	err := r.store.Record(ctx, result)
	metrics.RecordStoreRecordLatency(float64(time.Since(start).Milliseconds()))
	if err == nil {
		metrics.UpdateParticipantsTracked(r.store.Count(ctx))
	}
	return err
}

// Service runs the matchday pipeline behind a submission API.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	jobQueue   jobqueue.Queue
	engine     *engine.Engine
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	shardCount  int
	formWindow  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of simulation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the fixture queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the fixture dedupe cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the rating store shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithFormWindow sets how many recent matches feed the form average.
func WithFormWindow(window int) Option {
	return func(s *Service) {
		if window > 0 {
			s.formWindow = window
		}
	}
}

// WithEngine replaces the default engine, for custom tuning.
func WithEngine(e *engine.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10000,
		dedupeSize:  50000,
		shardCount:  16,
		formWindow:  5,
	}
	for _, opt := range opts {
		opt(s)
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

	s.logger.Info(ctx, "starting matchday service...")

	s.store = repository.NewMemoryStore(
		repository.WithShardCount(s.shardCount),
		repository.WithFormWindow(s.formWindow),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)
	if s.engine == nil {
		s.engine = engine.New()
	}

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.engine, &recordingStore{store: s.store})
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matchday service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
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
	s.logger.Info(ctx, "stopping matchday service...")

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "matchday service stopped")
}

// Drain closes the queue and waits for the workers to finish the
// remaining fixtures. The service cannot accept submissions afterwards.
func (s *Service) Drain(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	err := s.workerPool.Shutdown(ctx)
	s.started = false
	return err
}

// SubmitFixture submits one participant's match for asynchronous
// simulation. Duplicate submissions for the same match and participant
// are dropped and reported as accepted. Returns false only when the
// queue rejected the job.
func (s *Service) SubmitFixture(ctx context.Context, snap model.ParticipantSnapshot, mc model.MatchContext, seed int64) bool {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return false
	}

	if err := snap.Validate(); err != nil {
		metrics.RecordValidationFailure("snapshot")
		s.logger.Warn(ctx, "rejecting fixture: bad snapshot", logger.Error(err))
		return false
	}
	if err := mc.Validate(); err != nil {
		metrics.RecordValidationFailure("context")
		s.logger.Warn(ctx, "rejecting fixture: bad context", logger.Error(err))
		return false
	}

	key := dedupe.Key{MatchID: mc.MatchID, ParticipantID: snap.ID}
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordDuplicateFixture()
		s.logger.Debug(ctx, "duplicate fixture, skipping",
			logger.String("matchID", mc.MatchID.String()),
			logger.String("participantID", snap.ID.String()),
		)
		return true
	}

	accepted := s.jobQueue.Enqueue(ctx, jobqueue.Job{
		Seed:     seed,
		Snapshot: snap,
		Context:  mc,
	})
	if !accepted {
		// Allow a retry once the queue has room.
		s.deduper.Unrecord(ctx, key)
		s.logger.Warn(ctx, "fixture queue full, dropping submission",
			logger.String("matchID", mc.MatchID.String()),
			logger.String("participantID", snap.ID.String()),
		)
	}
	return accepted
}

// Latest returns the most recent rating result for a participant.
func (s *Service) Latest(ctx context.Context, participantID uuid.UUID) (model.RatingResult, error) {
	return s.store.Latest(ctx, participantID)
}

// History returns up to limit results for a participant, newest first.
func (s *Service) History(ctx context.Context, participantID uuid.UUID, limit int) ([]model.RatingResult, error) {
	return s.store.History(ctx, participantID, limit)
}

// Form returns the participant's rolling form average.
func (s *Service) Form(ctx context.Context, participantID uuid.UUID) (float64, error) {
	return s.store.Form(ctx, participantID)
}

// QueueLen returns the number of fixtures waiting to be simulated.
func (s *Service) QueueLen(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return s.jobQueue.Len(ctx)
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}
	if s.started {
		stats["queueLength"] = s.jobQueue.Len(ctx)
		stats["participants"] = s.store.Count(ctx)
		stats["dedupeEntries"] = s.deduper.Size()
	}
	return stats
}
