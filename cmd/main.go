package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	app "github.com/MaxTheDreaded/player-manager/internal/app"
	"github.com/MaxTheDreaded/player-manager/internal/config"
	"github.com/MaxTheDreaded/player-manager/internal/domain/aggregate"
	"github.com/MaxTheDreaded/player-manager/internal/domain/events"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
	"github.com/MaxTheDreaded/player-manager/internal/engine"
	"github.com/MaxTheDreaded/player-manager/pkg/logger"
	"github.com/MaxTheDreaded/player-manager/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	drainTimeout           = 60 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Build the engine with any tuning overrides; zero-valued overrides
	// fall through to the production defaults.
	eng := engine.New(
		engine.WithAggregator(aggregate.New(
			aggregate.WithCategoryWeights(cfg.GoalWeight, cfg.NegativeWeight),
		)),
		engine.WithGeneratorOptions(events.WithBaseRate(cfg.BaseEventRate)),
	)

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithEngine(eng),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithShardCount(cfg.ShardCount),
		app.WithFormWindow(cfg.FormWindow),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// Expose the prometheus registry over HTTP.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting metrics server", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("metrics server failed: " + err.Error() + "\n")
		}
	}()

	// Run the matchday and report the results.
	runMatchday(ctx, cfg, svc, log)

	// Keep serving metrics until a shutdown signal arrives
	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "stopped")
}

// runMatchday submits one fixture per generated participant, waits for
// the workers to drain the queue and logs each match report.
func runMatchday(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible demo matchday

	mc := model.MatchContext{
		MatchID:           uuid.New(),
		Importance:        model.League,
		RegulationMinutes: 90,
		Home:              rng.Intn(2) == 0,
		OppositionQuality: 35 + rng.Float64()*30,
	}

	snapshots := generateRoster(rng, cfg.Fixtures)

	log.Info(ctx, "simulating matchday",
		logger.String("matchID", mc.MatchID.String()),
		logger.Int("fixtures", len(snapshots)),
	)

	for _, snap := range snapshots {
		if !svc.SubmitFixture(ctx, snap, mc, rng.Int63()) {
			log.Warn(ctx, "fixture not accepted", logger.String("participantID", snap.ID.String()))
		}
	}

	drainCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	if err := svc.Drain(drainCtx); err != nil {
		log.Error(ctx, "matchday drain failed", logger.Error(err))
		return
	}

	for _, snap := range snapshots {
		res, err := svc.Latest(ctx, snap.ID)
		if err != nil {
			log.Warn(ctx, "no result for participant",
				logger.String("participantID", snap.ID.String()),
				logger.Error(err),
			)
			continue
		}
		form, _ := svc.Form(ctx, snap.ID)
		log.Info(ctx, "match report",
			logger.String("participantID", res.ParticipantID.String()),
			logger.String("role", snap.Role.String()),
			logger.Float64("rating", res.Rating),
			logger.String("involvement", res.Involvement.String()),
			logger.Int("events", len(res.Events)),
			logger.Float64("form", form),
		)
	}
}

// generateRoster builds count random participant snapshots cycling
// through the defined roles, goalkeeper first.
func generateRoster(rng *rand.Rand, count int) []model.ParticipantSnapshot {
	roles := []model.Role{
		model.RoleGoalkeeper,
		model.RoleCentreBack,
		model.RoleFullBack,
		model.RoleDefensiveMid,
		model.RoleCentreMid,
		model.RoleWideMid,
		model.RoleAttackingMid,
		model.RoleWinger,
		model.RoleCentreForward,
	}

	attr := func() float64 { return 35 + rng.Float64()*55 }

	snapshots := make([]model.ParticipantSnapshot, 0, count)
	for i := 0; i < count; i++ {
		snapshots = append(snapshots, model.ParticipantSnapshot{
			ID:   uuid.New(),
			Role: roles[i%len(roles)],
			Technical: model.TechnicalAttributes{
				Dribbling:  attr(),
				Passing:    attr(),
				Shooting:   attr(),
				FirstTouch: attr(),
				Tackling:   attr(),
				Crossing:   attr(),
			},
			Physical: model.PhysicalAttributes{
				Pace:     attr(),
				Stamina:  attr(),
				Strength: attr(),
				Agility:  attr(),
				Jumping:  attr(),
			},
			Mental: model.MentalAttributes{
				Composure:     attr(),
				Vision:        attr(),
				WorkRate:      attr(),
				Determination: attr(),
				Positioning:   attr(),
				Teamwork:      attr(),
			},
			Hidden: model.HiddenAttributes{
				Consistency:     attr(),
				Professionalism: attr(),
				BigMatchTrait:   attr(),
				InjuryProneness: 5 + rng.Float64()*30,
			},
			Form:    40 + rng.Float64()*35,
			Fitness: 60 + rng.Float64()*35,
			Fatigue: 10 + rng.Float64()*40,
			Morale:  40 + rng.Float64()*50,
		})
	}
	return snapshots
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// queue and store gauges from the service stats.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateServiceMetrics publishes a snapshot of the service stats.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.Stats()

	if queueLen, ok := stats["queueLength"].(int); ok {
		metrics.UpdateQueueSize(queueLen)
	}

	if participants, ok := stats["participants"].(int); ok {
		metrics.UpdateParticipantsTracked(participants)
	}

	if workerCount, ok := stats["workerCount"].(int); ok {
		metrics.UpdateWorkerActiveCount(workerCount)
	}
}
