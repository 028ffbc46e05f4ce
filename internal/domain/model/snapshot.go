package model

import (
	"fmt"

	"github.com/google/uuid"
)

// TechnicalAttributes are a participant's ball skills, 0-100.
type TechnicalAttributes struct {
	Dribbling  float64
	Passing    float64
	Shooting   float64
	FirstTouch float64
	Tackling   float64
	Crossing   float64
}

// PhysicalAttributes are a participant's athletic traits, 0-100.
type PhysicalAttributes struct {
	Pace     float64
	Stamina  float64
	Strength float64
	Agility  float64
	Jumping  float64
}

// MentalAttributes are a participant's cognitive traits, 0-100.
type MentalAttributes struct {
	Composure     float64
	Vision        float64
	WorkRate      float64
	Determination float64
	Positioning   float64
	Teamwork      float64
}

// HiddenAttributes are traits never shown to the player but used by the
// simulation, 0-100.
type HiddenAttributes struct {
	Consistency     float64
	Professionalism float64
	BigMatchTrait   float64
	InjuryProneness float64
}

// ParticipantSnapshot is the immutable per-match view of one participant.
// All bounded fields must lie in [0,100] at construction; the engine
// rejects out-of-range input instead of clamping it.
type ParticipantSnapshot struct {
	ID   uuid.UUID
	Role Role

	Technical TechnicalAttributes
	Physical  PhysicalAttributes
	Mental    MentalAttributes
	Hidden    HiddenAttributes

	Form    float64
	Fitness float64
	Fatigue float64
	Morale  float64
}

// Validate checks every bounded field against its declared range.
// Returns an error wrapping ErrInvalidSnapshot naming the first offending
// field.
func (s ParticipantSnapshot) Validate() error {
	if s.ID == uuid.Nil {
		return fmt.Errorf("%w: participant id is nil", ErrInvalidSnapshot)
	}
	if s.Role < RoleGoalkeeper || s.Role >= roleCount {
		return fmt.Errorf("%w: unknown role %d", ErrInvalidSnapshot, int(s.Role))
	}
	checks := []struct {
		name string
		val  float64
	}{
		{"technical.dribbling", s.Technical.Dribbling},
		{"technical.passing", s.Technical.Passing},
		{"technical.shooting", s.Technical.Shooting},
		{"technical.first_touch", s.Technical.FirstTouch},
		{"technical.tackling", s.Technical.Tackling},
		{"technical.crossing", s.Technical.Crossing},
		{"physical.pace", s.Physical.Pace},
		{"physical.stamina", s.Physical.Stamina},
		{"physical.strength", s.Physical.Strength},
		{"physical.agility", s.Physical.Agility},
		{"physical.jumping", s.Physical.Jumping},
		{"mental.composure", s.Mental.Composure},
		{"mental.vision", s.Mental.Vision},
		{"mental.work_rate", s.Mental.WorkRate},
		{"mental.determination", s.Mental.Determination},
		{"mental.positioning", s.Mental.Positioning},
		{"mental.teamwork", s.Mental.Teamwork},
		{"hidden.consistency", s.Hidden.Consistency},
		{"hidden.professionalism", s.Hidden.Professionalism},
		{"hidden.big_match_trait", s.Hidden.BigMatchTrait},
		{"hidden.injury_proneness", s.Hidden.InjuryProneness},
		{"form", s.Form},
		{"fitness", s.Fitness},
		{"fatigue", s.Fatigue},
		{"morale", s.Morale},
	}
	for _, c := range checks {
		if c.val < 0 || c.val > 100 {
			return fmt.Errorf("%w: %s=%g outside [0,100]", ErrInvalidSnapshot, c.name, c.val)
		}
	}
	return nil
}

// TechnicalAverage is the mean of the technical attribute block.
func (s ParticipantSnapshot) TechnicalAverage() float64 {
	t := s.Technical
	return (t.Dribbling + t.Passing + t.Shooting + t.FirstTouch + t.Tackling + t.Crossing) / 6
}
