// Package report packages the rating, stat tallies and event log into
// the outward-facing match report. No scoring logic lives here; it only
// counts and formats already-computed data.
package report

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MaxTheDreaded/player-manager/internal/domain/aggregate"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
)

// StatLine holds the counting stats derived from successful events.
type StatLine struct {
	Goals          int
	Assists        int
	ShotsOnTarget  int
	ShotsOffTarget int
	KeyPasses      int
	Dribbles       int
	Tackles        int
	Interceptions  int
	Clearances     int
	Saves          int
	FoulsCommitted int
	YellowCards    int
	RedCards       int
	MinutesPlayed  int

	// Counts maps every event type to its occurrence count, successful
	// or not, for collaborators that want the full breakdown.
	Counts map[model.EventType]int
}

// MatchReport is the engine's complete output for one participant in one
// match. Consumers must treat it as read-only.
type MatchReport struct {
	Result model.RatingResult
	Stats  StatLine
}

// Assemble builds the report from the scored events and the aggregation
// summary. The event slice is carried through unchanged.
func Assemble(participantID, matchID uuid.UUID, events []model.MatchEvent, summary aggregate.Summary, rating float64, regulationMinutes int) MatchReport {
	return MatchReport{
		Result: model.RatingResult{
			ParticipantID: participantID,
			MatchID:       matchID,
			Rating:        rating,
			Involvement:   summary.Involvement,
			RawScore:      summary.Raw,
			Events:        events,
		},
		Stats: tally(events, regulationMinutes),
	}
}

func tally(events []model.MatchEvent, regulationMinutes int) StatLine {
	s := StatLine{
		MinutesPlayed: regulationMinutes,
		Counts:        make(map[model.EventType]int, len(events)),
	}
	for _, e := range events {
		s.Counts[e.Type]++

		switch e.Type {
		case model.Goal:
			s.Goals++
			s.ShotsOnTarget++
		case model.Assist:
			s.Assists++
		case model.ShotOnTarget:
			s.ShotsOnTarget++
		case model.ShotOffTarget, model.MissedBigChance:
			s.ShotsOffTarget++
		case model.KeyPass, model.ThroughBall:
			s.KeyPasses++
		case model.DribbleWon:
			s.Dribbles++
		case model.TackleWon, model.LastManTackle:
			s.Tackles++
		case model.Interception:
			s.Interceptions++
		case model.Clearance, model.GoalLineClearance, model.SweeperClearance:
			s.Clearances++
		case model.Save, model.ReflexSave, model.OneOnOneSave, model.PenaltySave:
			s.Saves++
		case model.FoulCommitted:
			s.FoulsCommitted++
		case model.YellowCard:
			s.YellowCards++
		case model.SecondYellow:
			s.YellowCards++
			s.RedCards++
			s.MinutesPlayed = e.Minute
		case model.RedCard:
			s.RedCards++
			s.MinutesPlayed = e.Minute
		case model.Injury:
			s.MinutesPlayed = e.Minute
		}
	}
	return s
}

// Summary renders a one-line human-readable digest for logs.
func (r MatchReport) Summary() string {
	return fmt.Sprintf("rating=%.1f involvement=%s goals=%d assists=%d events=%d",
		r.Result.Rating, r.Result.Involvement, r.Stats.Goals, r.Stats.Assists, len(r.Result.Events))
}
