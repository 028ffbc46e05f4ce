package aggregate_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/MaxTheDreaded/player-manager/internal/domain/aggregate"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
)

// scored builds an event whose breakdown is already computed, as the
// aggregation stage receives them.
func scored(t model.EventType, minute int, base, final float64) model.MatchEvent {
	return model.MatchEvent{
		ID:      uuid.New(),
		Type:    t,
		Minute:  minute,
		Success: final >= 0,
		Impact:  model.ImpactBreakdown{Base: base, Final: final},
	}
}

func TestAggregateBasics(t *testing.T) {
	Convey("Given an aggregator with default tuning", t, func() {
		agg := aggregate.New()

		Convey("An empty event list yields a zero raw score and very low involvement", func() {
			s, err := agg.Aggregate(nil)
			So(err, ShouldBeNil)
			So(s.Raw, ShouldEqual, 0)
			So(s.Involvement, ShouldEqual, model.VeryLowInvolvement)
		})

		Convey("A non-monotonic sequence fails loudly", func() {
			events := []model.MatchEvent{
				scored(model.TackleWon, 50, 1.2, 1.2),
				scored(model.TackleWon, 20, 1.2, 1.2),
			}
			_, err := agg.Aggregate(events)
			So(errors.Is(err, model.ErrInvariant), ShouldBeTrue)
		})

		Convey("Goals carry the extra category weight", func() {
			goal, err := agg.Aggregate([]model.MatchEvent{scored(model.Goal, 10, 8, 8)})
			So(err, ShouldBeNil)
			// 8 * 1.4 then capped for very low involvement
			So(goal.Raw, ShouldEqual, 4.0)
		})

		Convey("Negative events bite harder than their face value", func() {
			s, err := agg.Aggregate([]model.MatchEvent{scored(model.DefensiveError, 30, -2.8, -2.8)})
			So(err, ShouldBeNil)
			So(s.Raw, ShouldAlmostEqual, -2.8*1.2, 1e-9)
		})
	})
}

func TestDiminishingReturns(t *testing.T) {
	Convey("Given repeated occurrences of one positive event type", t, func() {
		agg := aggregate.New()

		contribution := func(n int) float64 {
			events := make([]model.MatchEvent, 0, n)
			for i := 0; i < n; i++ {
				events = append(events, scored(model.KeyPass, 10+i, 2.5, 2.5))
			}
			s, err := agg.Aggregate(events)
			So(err, ShouldBeNil)
			return s.Raw
		}

		Convey("Each marginal occurrence is worth strictly less than the previous", func() {
			prevMarginal := contribution(1)
			total := prevMarginal
			for k := 2; k <= 6; k++ {
				next := contribution(k)
				marginal := next - total
				So(marginal, ShouldBeGreaterThan, 0)
				So(marginal, ShouldBeLessThan, prevMarginal)
				prevMarginal = marginal
				total = next
			}
		})
	})

	Convey("Given repeated occurrences of one negative event type", t, func() {
		agg := aggregate.New()

		raw := func(n int) float64 {
			events := make([]model.MatchEvent, 0, n)
			for i := 0; i < n; i++ {
				events = append(events, scored(model.TackleLost, 10+i, -0.5, -0.5))
			}
			s, err := agg.Aggregate(events)
			So(err, ShouldBeNil)
			return s.Raw
		}

		Convey("The negative curve is shallower, so mistakes keep compounding", func() {
			// Third positive key pass retains 1/(1+0.45*2) ≈ 53% of face
			// value; third lost tackle retains 1/(1+0.15*2) ≈ 77%.
			marginalPos := 1.0 / (1.0 + 0.45*2)
			marginalNeg := 1.0 / (1.0 + 0.15*2)
			So(marginalNeg, ShouldBeGreaterThan, marginalPos)
			So(raw(3), ShouldBeLessThan, raw(2))
		})
	})
}

func TestInvolvementClassification(t *testing.T) {
	Convey("Given event lists of increasing size", t, func() {
		agg := aggregate.New()

		build := func(n int) []model.MatchEvent {
			events := make([]model.MatchEvent, 0, n)
			for i := 0; i < n; i++ {
				events = append(events, scored(model.Interception, i+1, 1.0, 1.0))
			}
			return events
		}

		classify := func(n int) model.Involvement {
			s, err := agg.Aggregate(build(n))
			So(err, ShouldBeNil)
			return s.Involvement
		}

		Convey("Counts map to the documented classes", func() {
			So(classify(0), ShouldEqual, model.VeryLowInvolvement)
			So(classify(1), ShouldEqual, model.VeryLowInvolvement)
			So(classify(2), ShouldEqual, model.LowInvolvement)
			So(classify(3), ShouldEqual, model.LowInvolvement)
			So(classify(4), ShouldEqual, model.NormalInvolvement)
			So(classify(9), ShouldEqual, model.NormalInvolvement)
			So(classify(10), ShouldEqual, model.HighInvolvement)
		})

		Convey("Sub-threshold touches do not count as meaningful actions", func() {
			events := build(1)
			for i := 0; i < 5; i++ {
				events = append(events, scored(model.ClaimCross, 50+i, 0.2, 0.2))
			}
			s, err := agg.Aggregate(events)
			So(err, ShouldBeNil)
			So(s.MeaningfulActions, ShouldEqual, 1)
			So(s.Involvement, ShouldEqual, model.VeryLowInvolvement)
		})
	})
}

func TestInvolvementCaps(t *testing.T) {
	Convey("Given a huge impact with minimal involvement", t, func() {
		agg := aggregate.New()

		Convey("Very low involvement caps the raw aggregate", func() {
			s, err := agg.Aggregate([]model.MatchEvent{scored(model.Goal, 90, 8, 20)})
			So(err, ShouldBeNil)
			So(s.Involvement, ShouldEqual, model.VeryLowInvolvement)
			So(s.Raw, ShouldBeLessThanOrEqualTo, 4.0)
		})

		Convey("Low involvement caps at the higher bound", func() {
			events := []model.MatchEvent{
				scored(model.Goal, 20, 8, 12),
				scored(model.Assist, 40, 5, 7),
				scored(model.KeyPass, 60, 2.5, 3),
			}
			s, err := agg.Aggregate(events)
			So(err, ShouldBeNil)
			So(s.Involvement, ShouldEqual, model.LowInvolvement)
			So(s.Raw, ShouldBeLessThanOrEqualTo, 8.0)
		})

		Convey("High involvement is not capped", func() {
			events := make([]model.MatchEvent, 0, 12)
			for i := 0; i < 12; i++ {
				events = append(events, scored(model.Interception, i+1, 1.0, 1.0))
			}
			events = append(events, scored(model.Goal, 80, 8, 12))
			s, err := agg.Aggregate(events)
			So(err, ShouldBeNil)
			So(s.Involvement, ShouldEqual, model.HighInvolvement)
			So(s.Raw, ShouldBeGreaterThan, 8.0)
		})
	})
}

func TestConsistencyPull(t *testing.T) {
	Convey("Given a match with both strong positives and strong negatives", t, func() {
		agg := aggregate.New()

		events := []model.MatchEvent{
			scored(model.Goal, 10, 8, 9),
			scored(model.Assist, 30, 5, 5),
			scored(model.DefensiveError, 50, -2.8, -3.2),
			scored(model.DefensiveError, 70, -2.8, -3.4),
			scored(model.YellowCard, 80, -1, -1.1),
		}
		s, err := agg.Aggregate(events)
		So(err, ShouldBeNil)

		Convey("The aggregate is pulled toward the middle-high band", func() {
			// Without the pull the extremes would cancel toward zero;
			// the erratic-but-eventful match should read above that.
			exact := func() float64 {
				goal := 9 * 1.4
				assist := 5.0
				err1 := -3.2 * 1.2
				err2 := -3.4 * 1.2 / (1 + 0.15)
				card := -1.1 * 1.2
				raw := goal + assist + err1 + err2 + card
				return raw + 0.25*(3.0-raw)
			}()
			So(s.Raw, ShouldAlmostEqual, exact, 1e-9)
		})
	})
}
