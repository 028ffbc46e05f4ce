// Package engine runs the per-match simulation pipeline: validate the
// inputs, generate the event sequence, score each event, aggregate,
// normalize and assemble the report. One Simulate call is the
// independently schedulable unit of work; runs are fully isolated and
// deterministic for a given seed.
package engine

import (
	"context"
	"fmt"

	"github.com/MaxTheDreaded/player-manager/internal/domain/aggregate"
	"github.com/MaxTheDreaded/player-manager/internal/domain/events"
	"github.com/MaxTheDreaded/player-manager/internal/domain/impact"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
	"github.com/MaxTheDreaded/player-manager/internal/domain/ratingcurve"
	"github.com/MaxTheDreaded/player-manager/internal/domain/report"
)

// Engine wires the pipeline stages behind one façade. It holds no
// per-match state, so a single Engine may serve concurrent matches.
type Engine struct {
	calc          *impact.Calculator
	agg           *aggregate.Aggregator
	generatorOpts []events.Option
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTuning replaces the impact tuning table.
func WithTuning(t impact.Tuning) Option {
	return func(e *Engine) {
		e.calc = impact.NewCalculator(t)
	}
}

// WithAggregator replaces the aggregation configuration.
func WithAggregator(a *aggregate.Aggregator) Option {
	return func(e *Engine) {
		if a != nil {
			e.agg = a
		}
	}
}

// WithGeneratorOptions forwards options to each per-match generator.
func WithGeneratorOptions(opts ...events.Option) Option {
	return func(e *Engine) {
		e.generatorOpts = opts
	}
}

// New creates an Engine with production tuning.
func New(opts ...Option) *Engine {
	e := &Engine{
		calc: impact.NewCalculator(impact.DefaultTuning()),
		agg:  aggregate.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate runs one match for one participant. All validation happens
// here, before any event is generated; no partial result is returned on
// failure. The context is honored at the entry boundary only: a match
// run either completes or did not happen.
func (e *Engine) Simulate(ctx context.Context, snap model.ParticipantSnapshot, mc model.MatchContext, seed int64) (report.MatchReport, error) {
	if err := ctx.Err(); err != nil {
		return report.MatchReport{}, fmt.Errorf("simulate: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return report.MatchReport{}, err
	}
	if err := mc.Validate(); err != nil {
		return report.MatchReport{}, err
	}

	gen := events.New(seed, e.generatorOpts...)
	sequence, err := gen.Generate(snap, mc)
	if err != nil {
		return report.MatchReport{}, err
	}

	scored := e.calc.Apply(sequence, mc, snap.Role)

	summary, err := e.agg.Aggregate(scored)
	if err != nil {
		return report.MatchReport{}, err
	}

	rating := ratingcurve.Rating(summary.Raw)

	return report.Assemble(snap.ID, mc.MatchID, scored, summary, rating, mc.RegulationMinutes), nil
}

// Score runs the deterministic back half of the pipeline over an
// already-built event sequence. Collaborators use it to replay or test
// fixed scenarios; Simulate uses the same stages.
func (e *Engine) Score(snap model.ParticipantSnapshot, mc model.MatchContext, sequence []model.MatchEvent) (report.MatchReport, error) {
	if err := snap.Validate(); err != nil {
		return report.MatchReport{}, err
	}
	if err := mc.Validate(); err != nil {
		return report.MatchReport{}, err
	}

	scored := e.calc.Apply(sequence, mc, snap.Role)
	summary, err := e.agg.Aggregate(scored)
	if err != nil {
		return report.MatchReport{}, err
	}
	rating := ratingcurve.Rating(summary.Raw)
	return report.Assemble(snap.ID, mc.MatchID, scored, summary, rating, mc.RegulationMinutes), nil
}
