// Package impact computes the signed impact score for individual match
// events. The calculator is pure: identical inputs always produce the
// identical breakdown, which keeps replay and testing deterministic.
package impact

import "github.com/MaxTheDreaded/player-manager/internal/domain/model"

// Multiplier bounds. The time and clutch multipliers are capped jointly
// so late clutch moments cannot compound without limit.
const (
	timeGainPerMatch   = 0.45
	maxTimeMultiplier  = 1.45
	minDifficulty      = 0.8
	maxDifficulty      = 1.3
	maxTimeClutchCombo = 2.0

	lateClutchMinuteFrac = 0.83 // fraction of regulation considered "late"
	lateClutchBoost      = 1.2
	closeScoreBoost      = 1.15
)

// importanceFactor scales clutch weight by competition tier.
var importanceFactor = map[model.Importance]float64{
	model.Friendly: 0.8,
	model.League:   1.0,
	model.Cup:      1.2,
	model.Final:    1.5,
}

// Tuning is the immutable configuration table for the calculator. Build
// one with DefaultTuning and options; never mutate it afterwards.
type Tuning struct {
	base         map[model.EventType]float64
	positionMult map[model.Category]map[model.Position]float64
	goalMult     map[model.Position]float64
}

// Option adjusts a Tuning under construction.
type Option func(*Tuning)

// WithBaseValue overrides the base impact value of one event type.
func WithBaseValue(t model.EventType, v float64) Option {
	return func(tb *Tuning) {
		tb.base[t] = v
	}
}

// WithGoalMultiplier overrides the position-responsibility multiplier a
// position receives for scoring.
func WithGoalMultiplier(p model.Position, v float64) Option {
	return func(tb *Tuning) {
		if v > 0 {
			tb.goalMult[p] = v
		}
	}
}

// DefaultTuning returns the production tuning table.
func DefaultTuning(opts ...Option) Tuning {
	t := Tuning{
		base: map[model.EventType]float64{
			model.Goal:            8.0,
			model.ShotOnTarget:    1.5,
			model.ShotOffTarget:   0.8,
			model.MissedBigChance: -2.5,
			model.KeyPass:         2.5,
			model.Assist:          5.0,
			model.DribbleWon:      0.7,
			model.DribbleLost:     -0.4,
			model.CrossCompleted:  0.9,
			model.CrossLost:       -0.3,
			model.ThroughBall:     1.8,
			model.PenaltyWon:      2.0,
			model.PenaltyMissed:   -3.0,

			model.TackleWon:         1.2,
			model.TackleLost:        -0.5,
			model.Interception:      1.0,
			model.Block:             2.0,
			model.Clearance:         0.8,
			model.AerialWon:         0.6,
			model.AerialLost:        -0.3,
			model.LastManTackle:     3.0,
			model.GoalLineClearance: 3.5,
			model.DefensiveError:    -2.8,

			model.Save:             2.5,
			model.ReflexSave:       3.5,
			model.OneOnOneSave:     4.0,
			model.PenaltySave:      4.0,
			model.ClaimCross:       0.5,
			model.PunchClear:       0.6,
			model.SweeperClearance: 1.0,
			model.GoalConceded:     -2.0,

			model.BallRecovery:  0.6,
			model.CounterAttack: 1.0,
			model.TurnoverWon:   0.7,
			model.TurnoverLost:  -0.8,

			model.FoulCommitted:   -0.5,
			model.YellowCard:      -1.0,
			model.SecondYellow:    -2.2,
			model.RedCard:         -3.0,
			model.PenaltyConceded: -2.0,
			model.Injury:          -0.3,

			model.PressWon:         0.5,
			model.PressBroken:      -0.4,
			model.OffBallRun:       0.4,
			model.TrackingBackStop: 0.8,
			model.MarkingError:     -1.2,
		},
		// Out-of-remit actions are worth more: defenders creating,
		// forwards defending. Keyed by (event category, position).
		positionMult: map[model.Category]map[model.Position]float64{
			model.Attacking: {
				model.Goalkeeper: 1.8,
				model.Defender:   1.4,
				model.Midfielder: 1.1,
				model.Forward:    1.0,
			},
			model.Defensive: {
				model.Goalkeeper: 1.1,
				model.Defender:   1.0,
				model.Midfielder: 1.1,
				model.Forward:    1.4,
			},
			model.Goalkeeping: {
				model.Goalkeeper: 1.0,
				model.Defender:   1.3,
				model.Midfielder: 1.3,
				model.Forward:    1.3,
			},
			model.Transition: {
				model.Goalkeeper: 1.2,
				model.Defender:   1.0,
				model.Midfielder: 1.0,
				model.Forward:    1.1,
			},
			model.Discipline: {
				model.Goalkeeper: 1.0,
				model.Defender:   1.0,
				model.Midfielder: 1.0,
				model.Forward:    1.0,
			},
			model.OffBall: {
				model.Goalkeeper: 1.1,
				model.Defender:   1.0,
				model.Midfielder: 1.0,
				model.Forward:    1.2,
			},
		},
		// Goals get their own sharper table on top of the category one.
		goalMult: map[model.Position]float64{
			model.Goalkeeper: 2.0,
			model.Defender:   1.5,
			model.Midfielder: 1.2,
			model.Forward:    1.0,
		},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// BaseValue returns the configured base impact for an event type.
func (t Tuning) BaseValue(et model.EventType) float64 {
	return t.base[et]
}
