package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ScoreState is the team score situation at the moment of an event.
type ScoreState struct {
	GoalDiff int // participant's team goals minus opponent goals
}

// Standing derives the leading/drawing/trailing state from the goal
// differential.
func (s ScoreState) Standing() Standing {
	switch {
	case s.GoalDiff > 0:
		return Leading
	case s.GoalDiff < 0:
		return Trailing
	default:
		return Drawing
	}
}

// ImpactBreakdown records how one event's signed impact was computed.
type ImpactBreakdown struct {
	Base       float64
	Time       float64
	Position   float64
	Difficulty float64
	Clutch     float64
	Final      float64
}

// MatchEvent is one atomic in-match occurrence. Events are immutable once
// created; the per-match sequence is append-only and non-decreasing in
// minute.
type MatchEvent struct {
	ID            uuid.UUID
	MatchID       uuid.UUID
	ParticipantID uuid.UUID
	SecondaryID   uuid.UUID // linked teammate: the assister on a goal, the scorer on an assist; uuid.Nil when unattributed

	Type    EventType
	Minute  int
	Half    Half
	Zone    PitchZone
	Success bool
	LastMan bool

	Score  ScoreState
	Impact ImpactBreakdown
}

// WithImpact returns a copy of the event carrying the given breakdown.
// The receiver is left untouched.
func (e MatchEvent) WithImpact(b ImpactBreakdown) MatchEvent {
	e.Impact = b
	return e
}

// CheckOrdering verifies the event sequence invariants: minutes are
// non-negative and non-decreasing, and every type is defined. Violations
// are implementation bugs, surfaced as ErrInvariant.
func CheckOrdering(events []MatchEvent) error {
	last := 0
	for i, e := range events {
		if e.Minute < 0 {
			return fmt.Errorf("%w: event %d has negative minute %d", ErrInvariant, i, e.Minute)
		}
		if e.Minute < last {
			return fmt.Errorf("%w: event %d minute %d precedes %d", ErrInvariant, i, e.Minute, last)
		}
		if !e.Type.Valid() {
			return fmt.Errorf("%w: event %d has unknown type %d", ErrInvariant, i, int(e.Type))
		}
		last = e.Minute
	}
	return nil
}

// RatingResult is the final, immutable output of one match run for one
// participant. Consumers must treat it as read-only.
type RatingResult struct {
	ParticipantID uuid.UUID
	MatchID       uuid.UUID

	Rating      float64
	Involvement Involvement
	RawScore    float64

	Events []MatchEvent
}
