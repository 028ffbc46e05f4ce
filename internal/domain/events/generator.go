// Package events generates the chronologically ordered action sequence
// for one participant across one match.
//
// Sampling model: each minute is a Bernoulli trial whose probability is
// baseRate x phaseIntensity x involvementScore, clamped below 0.95. The
// expected event count is the sum of the per-minute probabilities, so it
// is strictly increasing in the involvement score without assuming a
// particular arrival distribution.
package events

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
)

// Generator tuning constants.
const (
	defaultBaseRate = 0.085

	lowFitnessThreshold   = 30.0
	lowFitnessInvolvement = 0.5 // involvement multiplier under the threshold
	lowFitnessFailBoost   = 2.0 // failure probability multiplier

	foulBaseChance     = 0.006
	cardGivenFoul      = 0.22
	secondCardShare    = 0.3 // share of cards that escalate for a booked player
	straightRedShare   = 0.06
	injuryBaseChance   = 0.0002
	injuryFatigueScale = 0.0006

	teamGoalChance   = 0.012 // per-minute chance either side scores
	homeGoalShare    = 0.54
	maxTriggerChance = 0.95

	lateFatigueFailPenalty = 0.85 // success multiplier when tired late on
	lateFatigueFrom        = 60.0

	minSuccessChance = 0.05
	maxSuccessChance = 0.95

	maxStoppageMinutes = 5
)

// Generator produces match event sequences from an injected random
// source. One Generator serves one match run; construct a fresh one per
// match with the match seed to replay deterministically.
type Generator struct {
	rng       *rand.Rand
	baseRate  float64
	teammates []uuid.UUID
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithBaseRate overrides the per-minute base involvement rate.
func WithBaseRate(rate float64) Option {
	return func(g *Generator) {
		if rate > 0 {
			g.baseRate = rate
		}
	}
}

// WithTeammates supplies the rest of the lineup so linked events can
// credit a secondary participant. Without a lineup the secondary
// reference stays empty.
func WithTeammates(ids []uuid.UUID) Option {
	return func(g *Generator) {
		g.teammates = ids
	}
}

// New creates a Generator seeded for one match.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic per-match replay requires a seeded source
		baseRate: defaultBaseRate,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// InvolvementScore is the expected-rate control for event triggering:
// position weight x work-rate factor x stamina factor x tactical-role
// factor, with a sharp reduction for participants below the fitness
// threshold.
func InvolvementScore(snap model.ParticipantSnapshot) float64 {
	score := positionWeight[snap.Role] *
		(0.6 + snap.Mental.WorkRate/100*0.8) *
		(0.7 + snap.Physical.Stamina/100*0.6) *
		tacticalRoleFactor[snap.Role]
	if snap.Fitness < lowFitnessThreshold {
		score *= lowFitnessInvolvement
	}
	return score
}

// Generate produces the full ordered event sequence for the participant.
// The only expected failure modes are invalid input; randomness never
// fails the run.
func (g *Generator) Generate(snap model.ParticipantSnapshot, mc model.MatchContext) ([]model.MatchEvent, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if err := mc.Validate(); err != nil {
		return nil, err
	}

	involvement := InvolvementScore(snap)
	// Form raises or lowers how often the participant finds the game.
	frequency := 0.75 + snap.Form/100*0.5

	stoppage := 1 + g.rng.Intn(maxStoppageMinutes)
	lastMinute := mc.RegulationMinutes + stoppage

	var (
		events   []model.MatchEvent
		goalDiff int
		booked   bool
	)

	for minute := 1; minute <= lastMinute; minute++ {
		goalDiff = g.advanceScore(goalDiff, mc.Home)

		if injured := g.rollInjury(snap, minute); injured {
			events = append(events, g.newEvent(snap, mc, model.Injury, minute, false, goalDiff))
			break
		}

		if disciplinary, ok := g.rollDiscipline(snap, minute, &booked); ok {
			ev := g.newEvent(snap, mc, disciplinary, minute, false, goalDiff)
			events = append(events, ev)
			if disciplinary == model.RedCard || disciplinary == model.SecondYellow {
				break // sent off: no further involvement
			}
			continue
		}

		p := g.baseRate * phaseIntensity(minute) * involvement * frequency
		if g.rng.Float64() >= math.Min(p, maxTriggerChance) {
			continue
		}

		ev := g.rollAction(snap, mc, minute, goalDiff)
		if ev.Type == model.Goal {
			goalDiff++
		}
		events = append(events, ev)

		// A goal may have been assisted; credit a follow-up chance for
		// creative teammates is out of scope, but the scorer's own
		// assist events arrive as regular attacking actions.
	}

	if err := model.CheckOrdering(events); err != nil {
		return nil, err
	}
	return events, nil
}

// advanceScore evolves the team score state independent of the focal
// participant, so clutch context exists even in quiet games.
func (g *Generator) advanceScore(goalDiff int, home bool) int {
	if g.rng.Float64() >= teamGoalChance {
		return goalDiff
	}
	share := homeGoalShare
	if !home {
		share = 1 - homeGoalShare
	}
	if g.rng.Float64() < share {
		return goalDiff + 1
	}
	return goalDiff - 1
}

func (g *Generator) rollInjury(snap model.ParticipantSnapshot, minute int) bool {
	p := snap.Hidden.InjuryProneness / 100 * (injuryBaseChance + snap.Fatigue/100*injuryFatigueScale)
	// Fatigue accumulates; the roll gets harsher as the match wears on.
	p *= 1 + float64(phaseIndex(minute))*0.2
	return g.rng.Float64() < p
}

// rollDiscipline occasionally produces fouls and cards. Low fitness and
// late fatigue push the rate up; professionalism pulls it down.
func (g *Generator) rollDiscipline(snap model.ParticipantSnapshot, minute int, booked *bool) (model.EventType, bool) {
	p := foulBaseChance * (1.4 - snap.Hidden.Professionalism/100*0.8)
	if snap.Fitness < lowFitnessThreshold {
		p *= lowFitnessFailBoost
	}
	if snap.Fatigue > lateFatigueFrom && phaseIndex(minute) >= 4 {
		p *= 1.5
	}
	if g.rng.Float64() >= p {
		return 0, false
	}

	roll := g.rng.Float64()
	switch {
	case roll < straightRedShare:
		return model.RedCard, true
	case roll < cardGivenFoul:
		if *booked {
			if g.rng.Float64() < secondCardShare {
				return model.SecondYellow, true
			}
			return model.FoulCommitted, true
		}
		*booked = true
		return model.YellowCard, true
	default:
		return model.FoulCommitted, true
	}
}

// rollAction selects a category, an action within it, resolves success
// and wraps the outcome in an event.
func (g *Generator) rollAction(snap model.ParticipantSnapshot, mc model.MatchContext, minute, goalDiff int) model.MatchEvent {
	category := g.pickCategory(snap)
	act := g.pickAction(snap, category)

	success := g.rng.Float64() < g.successChance(snap, mc, act, minute)
	eventType := act.failure
	if success {
		eventType = act.success
	}

	// A successful shot on target converts on a second roll driven by
	// finishing ability and composure. A completed key pass or through
	// ball can likewise turn into an assist.
	if success && act.shot {
		convert := (snap.Technical.Shooting + snap.Mental.Composure) / 2 / 240
		if g.rng.Float64() < convert {
			eventType = model.Goal
		}
	}
	if success && (eventType == model.KeyPass || eventType == model.ThroughBall) {
		convert := (snap.Technical.Passing + snap.Mental.Vision) / 2 / 300
		if g.rng.Float64() < convert {
			eventType = model.Assist
		}
	}

	ev := g.newEvent(snap, mc, eventType, minute, success, goalDiff)
	if eventType == model.Goal || eventType == model.Assist {
		ev.SecondaryID = g.pickTeammate()
	}
	return ev
}

// pickTeammate selects the assister for a goal or the scorer for an
// assist from the supplied lineup.
func (g *Generator) pickTeammate() uuid.UUID {
	if len(g.teammates) == 0 {
		return uuid.Nil
	}
	return g.teammates[g.rng.Intn(len(g.teammates))]
}

func (g *Generator) pickCategory(snap model.ParticipantSnapshot) model.Category {
	weights := categoryWeights[snap.Role]
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := g.rng.Float64() * total
	// Iterate in fixed category order for deterministic replay.
	for _, c := range []model.Category{
		model.Attacking, model.Defensive, model.Goalkeeping, model.Transition, model.OffBall,
	} {
		w, ok := weights[c]
		if !ok {
			continue
		}
		if roll < w {
			return c
		}
		roll -= w
	}
	return model.Transition
}

func (g *Generator) pickAction(snap model.ParticipantSnapshot, category model.Category) action {
	candidates := actionsByCategory[category]
	total := 0.0
	for _, a := range candidates {
		total += a.weight(snap)
	}
	roll := g.rng.Float64() * total
	for _, a := range candidates {
		w := a.weight(snap)
		if roll < w {
			return a
		}
		roll -= w
	}
	return candidates[len(candidates)-1]
}

// successChance resolves an action attempt from the governing attribute,
// modified by morale (confidence proxy), late fatigue, low fitness and
// the opposition factor.
func (g *Generator) successChance(snap model.ParticipantSnapshot, mc model.MatchContext, act action, minute int) float64 {
	p := act.skill(snap) / 100

	p *= 0.85 + snap.Morale/100*0.3
	p *= 1 - (mc.OppositionQuality-50)/200

	if snap.Fatigue > lateFatigueFrom && phaseIndex(minute) >= 4 {
		p *= lateFatigueFailPenalty
	}
	if snap.Fitness < lowFitnessThreshold {
		p /= lowFitnessFailBoost
	}

	return math.Max(minSuccessChance, math.Min(maxSuccessChance, p))
}

func (g *Generator) newEvent(snap model.ParticipantSnapshot, mc model.MatchContext, t model.EventType, minute int, success bool, goalDiff int) model.MatchEvent {
	return model.MatchEvent{
		ID:            uuid.Must(uuid.NewRandomFromReader(g.rng)),
		MatchID:       mc.MatchID,
		ParticipantID: snap.ID,
		Type:          t,
		Minute:        minute,
		Half:          model.HalfForMinute(minute, mc.RegulationMinutes),
		Zone:          g.rollZone(t, minute, mc.RegulationMinutes),
		Success:       success,
		LastMan:       t == model.LastManTackle || t == model.GoalLineClearance,
		Score:         model.ScoreState{GoalDiff: goalDiff},
	}
}

// rollZone places an event on the pitch. Attacking play drifts toward
// the final third as the match wears on; defensive and goalkeeping
// actions live near the participant's own goal.
func (g *Generator) rollZone(t model.EventType, minute, regulation int) model.PitchZone {
	switch t.Category() {
	case model.Goalkeeping:
		return model.DefensiveThird
	case model.Defensive:
		if g.rng.Float64() < 0.3 {
			return model.PenaltyBox
		}
		return model.DefensiveThird
	case model.Attacking:
		finalThird := 0.5 + float64(minute)/float64(regulation)*0.2
		switch {
		case t.IsShot() && g.rng.Float64() < 0.6:
			return model.PenaltyBox
		case g.rng.Float64() < finalThird:
			return model.FinalThird
		default:
			return model.MiddleThird
		}
	default:
		if g.rng.Float64() < 0.5 {
			return model.MiddleThird
		}
		return model.DefensiveThird
	}
}
