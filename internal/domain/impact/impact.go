package impact

import (
	"math"

	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
)

// Calculator turns match events into impact breakdowns using an immutable
// tuning table.
type Calculator struct {
	tuning Tuning
}

// NewCalculator creates a calculator over the given tuning table.
func NewCalculator(t Tuning) *Calculator {
	return &Calculator{tuning: t}
}

// Breakdown computes the full signed impact for one event. Negative base
// values stay negative; every multiplier is positive.
func (c *Calculator) Breakdown(e model.MatchEvent, mc model.MatchContext, role model.Role) model.ImpactBreakdown {
	base := c.tuning.BaseValue(e.Type)
	tm := c.timeMultiplier(e.Minute, mc.RegulationMinutes)
	pm := c.positionMultiplier(e.Type, role)
	dm := c.difficultyMultiplier(e, mc)
	cm := c.clutchMultiplier(e, mc, tm)

	return model.ImpactBreakdown{
		Base:       base,
		Time:       tm,
		Position:   pm,
		Difficulty: dm,
		Clutch:     cm,
		Final:      base * tm * pm * dm * cm,
	}
}

// Apply returns a new event slice with breakdowns filled in. The input
// slice is not modified.
func (c *Calculator) Apply(events []model.MatchEvent, mc model.MatchContext, role model.Role) []model.MatchEvent {
	out := make([]model.MatchEvent, len(events))
	for i, e := range events {
		out[i] = e.WithImpact(c.Breakdown(e, mc, role))
	}
	return out
}

// timeMultiplier grows monotonically with lateness: 1.0 at kickoff up to
// 1.45 in added time.
func (c *Calculator) timeMultiplier(minute, regulation int) float64 {
	if regulation <= 0 {
		regulation = 90
	}
	m := 1.0 + float64(minute)/float64(regulation)*timeGainPerMatch
	return math.Min(m, maxTimeMultiplier)
}

func (c *Calculator) positionMultiplier(et model.EventType, role model.Role) float64 {
	pos := role.Position()
	if et.IsGoal() {
		if m, ok := c.tuning.goalMult[pos]; ok {
			return m
		}
	}
	if byPos, ok := c.tuning.positionMult[et.Category()]; ok {
		if m, ok := byPos[pos]; ok {
			return m
		}
	}
	return 1.0
}

// difficultyMultiplier scales with contextual hardship: opposition
// quality, tight-zone execution, last-man situations and conditions.
// Clamped to [0.8, 1.3].
func (c *Calculator) difficultyMultiplier(e model.MatchEvent, mc model.MatchContext) float64 {
	d := 1.0 + (mc.OppositionQuality-50)/50*0.3
	// Tight execution space: the box for outfield play, the defensive
	// third for goalkeeping actions.
	tightZone := model.PenaltyBox
	if e.Type.Category() == model.Goalkeeping {
		tightZone = model.DefensiveThird
	}
	if e.Zone == tightZone {
		d += 0.05
	}
	if e.LastMan {
		d += 0.15
	}
	// Adverse conditions make execution harder; factor below 1 raises
	// difficulty, above 1 lowers it.
	d += (1 - mc.Conditions.Factor()) * 0.2
	return math.Max(minDifficulty, math.Min(maxDifficulty, d))
}

// clutchMultiplier boosts events in high-pressure states: late minutes,
// one-goal margins, important competitions. The product time x clutch is
// capped at maxTimeClutchCombo.
func (c *Calculator) clutchMultiplier(e model.MatchEvent, mc model.MatchContext, tm float64) float64 {
	m := 1.0
	reg := mc.RegulationMinutes
	if reg <= 0 {
		reg = 90
	}
	if float64(e.Minute) > float64(reg)*lateClutchMinuteFrac {
		m *= lateClutchBoost
	}
	if abs(e.Score.GoalDiff) <= 1 {
		m *= closeScoreBoost
	}
	m *= importanceFactor[mc.Importance]
	if tm > 0 && tm*m > maxTimeClutchCombo {
		m = maxTimeClutchCombo / tm
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
