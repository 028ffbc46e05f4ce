// Package aggregate sums per-event impacts into one raw score per
// participant per match, applying category rebalancing, diminishing
// returns, involvement caps and a consistency pass.
package aggregate

import (
	"math"

	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
)

// Default aggregation constants. All of them are tunable via options;
// the defaults are the production tuning.
const (
	defaultGoalWeight     = 1.4
	defaultNegativeWeight = 1.2

	// Diminishing returns: the kth same-type event is scaled by
	// 1/(1 + slope*(k-1)). Negatives use a shallower slope so repeated
	// mistakes still compound.
	defaultPositiveDiminish = 0.45
	defaultNegativeDiminish = 0.15

	// Involvement class thresholds on the meaningful-action count.
	defaultVeryLowBelow = 2.0
	defaultLowBelow     = 4.0
	defaultNormalBelow  = 10.0

	// Pre-normalization raw caps for minimal involvement.
	defaultVeryLowCap = 4.0
	defaultLowCap     = 8.0

	// Consistency pass: when positive and negative magnitudes both
	// exceed the trigger, pull the aggregate toward the middle-high
	// band instead of letting extremes cancel.
	consistencyTrigger = 3.0
	consistencyTarget  = 3.0
	consistencyPull    = 0.25

	// Events with |base| below this are touches, not meaningful actions.
	meaningfulBase = 0.3
)

// Summary is the aggregation output handed to normalization.
type Summary struct {
	Raw               float64
	Involvement       model.Involvement
	MeaningfulActions int
}

// Aggregator holds the tunable aggregation configuration.
type Aggregator struct {
	goalWeight     float64
	negativeWeight float64
	posDiminish    float64
	negDiminish    float64
	veryLowBelow   float64
	lowBelow       float64
	normalBelow    float64
	veryLowCap     float64
	lowCap         float64
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithCategoryWeights overrides the goal and negative-event weights.
func WithCategoryWeights(goal, negative float64) Option {
	return func(a *Aggregator) {
		if goal > 0 {
			a.goalWeight = goal
		}
		if negative > 0 {
			a.negativeWeight = negative
		}
	}
}

// WithInvolvementThresholds overrides the class boundaries.
func WithInvolvementThresholds(veryLowBelow, lowBelow, normalBelow float64) Option {
	return func(a *Aggregator) {
		if veryLowBelow > 0 && lowBelow > veryLowBelow && normalBelow > lowBelow {
			a.veryLowBelow = veryLowBelow
			a.lowBelow = lowBelow
			a.normalBelow = normalBelow
		}
	}
}

// WithDiminishSlopes overrides the diminishing-returns slopes.
func WithDiminishSlopes(positive, negative float64) Option {
	return func(a *Aggregator) {
		if positive > 0 {
			a.posDiminish = positive
		}
		if negative > 0 {
			a.negDiminish = negative
		}
	}
}

// New creates an Aggregator with the production defaults.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		goalWeight:     defaultGoalWeight,
		negativeWeight: defaultNegativeWeight,
		posDiminish:    defaultPositiveDiminish,
		negDiminish:    defaultNegativeDiminish,
		veryLowBelow:   defaultVeryLowBelow,
		lowBelow:       defaultLowBelow,
		normalBelow:    defaultNormalBelow,
		veryLowCap:     defaultVeryLowCap,
		lowCap:         defaultLowCap,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate reduces the ordered event list to a Summary. It verifies the
// sequence invariants first and fails loudly on violations.
func (a *Aggregator) Aggregate(events []model.MatchEvent) (Summary, error) {
	if err := model.CheckOrdering(events); err != nil {
		return Summary{}, err
	}

	var raw, positive, negative float64
	occurrences := make(map[model.EventType]int, len(events))
	meaningful := 0

	for _, e := range events {
		occurrences[e.Type]++
		k := occurrences[e.Type]

		contribution := e.Impact.Final * a.categoryWeight(e.Type)
		if contribution >= 0 {
			contribution *= diminish(k, a.posDiminish)
			positive += contribution
		} else {
			contribution *= diminish(k, a.negDiminish)
			negative += -contribution
		}
		raw += contribution

		if math.Abs(e.Impact.Base) >= meaningfulBase {
			meaningful++
		}
	}

	involvement := a.classify(float64(meaningful))

	// Minimal-involvement ceiling: one big moment alone cannot reach the
	// top of the scale.
	switch involvement {
	case model.VeryLowInvolvement:
		raw = math.Min(raw, a.veryLowCap)
	case model.LowInvolvement:
		raw = math.Min(raw, a.lowCap)
	}

	// Consistency pass: a match full of both strong positives and strong
	// negatives reads as erratic, not average; pull toward middle-high
	// rather than letting extremes cancel to near zero.
	if positive > consistencyTrigger && negative > consistencyTrigger {
		raw += consistencyPull * (consistencyTarget - raw)
	}

	return Summary{
		Raw:               raw,
		Involvement:       involvement,
		MeaningfulActions: meaningful,
	}, nil
}

// categoryWeight is the coarse second weighting layer on top of the
// per-event multipliers: goals count extra, negatives bite harder.
func (a *Aggregator) categoryWeight(t model.EventType) float64 {
	switch {
	case t.IsGoal():
		return a.goalWeight
	case isNegative(t):
		return a.negativeWeight
	default:
		return 1.0
	}
}

func isNegative(t model.EventType) bool {
	switch t {
	case model.MissedBigChance, model.DribbleLost, model.CrossLost, model.PenaltyMissed,
		model.TackleLost, model.AerialLost, model.DefensiveError, model.GoalConceded,
		model.TurnoverLost, model.FoulCommitted, model.YellowCard, model.SecondYellow,
		model.RedCard, model.PenaltyConceded, model.PressBroken, model.MarkingError:
		return true
	default:
		return false
	}
}

// diminish returns the scale for the kth occurrence of a type.
func diminish(k int, slope float64) float64 {
	return 1.0 / (1.0 + slope*float64(k-1))
}

func (a *Aggregator) classify(actions float64) model.Involvement {
	switch {
	case actions < a.veryLowBelow:
		return model.VeryLowInvolvement
	case actions < a.lowBelow:
		return model.LowInvolvement
	case actions < a.normalBelow:
		return model.NormalInvolvement
	default:
		return model.HighInvolvement
	}
}
