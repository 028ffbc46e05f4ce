// Package worker runs fixture jobs off the queue: each job is one full
// match simulation whose result is written to the rating store.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/MaxTheDreaded/player-manager/internal/adapters/mq/queue"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
	"github.com/MaxTheDreaded/player-manager/internal/domain/report"
	"github.com/MaxTheDreaded/player-manager/pkg/logger"
	"github.com/MaxTheDreaded/player-manager/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Simulator runs one match for one participant.
type Simulator interface {
	Simulate(ctx context.Context, snap model.ParticipantSnapshot, mc model.MatchContext, seed int64) (report.MatchReport, error)
}

// Recorder persists a completed rating result.
type Recorder interface {
	Record(ctx context.Context, result model.RatingResult) error
}

// Queue defines how workers receive fixture jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes fixture jobs using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing fixture jobs.
type InMemoryWorker struct {
	queue     Queue
	simulator Simulator
	recorder  Recorder
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, sim Simulator, rec Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		simulator: sim,
		recorder:  rec,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobChan:
			if !ok {
				return
			}
			if err := w.processJob(ctx, j); err != nil {
				w.logger.Error(ctx, "error processing fixture", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob runs one fixture end to end.
func (w *InMemoryWorker) processJob(ctx context.Context, j queue.Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	rep, err := w.simulator.Simulate(ctx, j.Snapshot, j.Context, j.Seed)
	if err != nil {
		metrics.RecordWorkerError("simulate")
		w.logger.Error(ctx, "simulation failed",
			logger.String("matchID", j.Context.MatchID.String()),
			logger.String("participantID", j.Snapshot.ID.String()),
			logger.Error(err),
		)
		return fmt.Errorf("simulate %s/%s: %w", j.Context.MatchID, j.Snapshot.ID, err)
	}

	metrics.RecordMatchSimulated()
	metrics.RecordSimulationDuration(float64(time.Since(start).Milliseconds()))
	metrics.RecordEventsGenerated(len(rep.Result.Events))
	metrics.RecordFinalRating(rep.Result.Rating)

	if err := w.recorder.Record(ctx, rep.Result); err != nil {
		metrics.RecordWorkerError("record")
		w.logger.Error(ctx, "recording result failed",
			logger.String("matchID", j.Context.MatchID.String()),
			logger.String("participantID", j.Snapshot.ID.String()),
			logger.Error(err),
		)
		return fmt.Errorf("record result: %w", err)
	}
	metrics.RecordResultRecorded()

	w.logger.Debug(ctx, "fixture complete",
		logger.String("participantID", j.Snapshot.ID.String()),
		logger.Float64("rating", rep.Result.Rating),
		logger.Int("events", len(rep.Result.Events)),
	)
	return nil
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*InMemoryWorker

	logger logger.Logger
	queue  Queue
}

// NewPool creates a new worker pool. A workerCount below one falls back
// to a CPU-derived default.
func NewPool(workerCount int, q Queue, sim Simulator, rec Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(q, sim, rec, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerActiveCount(workerCount)
	return pool
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop stops all workers without draining the queue.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
	metrics.UpdateWorkerActiveCount(0)
}

// Shutdown closes the queue, then waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}
