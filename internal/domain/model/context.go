package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Conditions carries optional weather and pitch modifiers. The zero value
// means neutral conditions.
type Conditions struct {
	Weather float64 // 0 = neutral, otherwise multiplier around 1.0
	Pitch   float64
}

// Factor collapses the conditions into a single multiplier, treating
// unset fields as 1.0.
func (c Conditions) Factor() float64 {
	w, p := c.Weather, c.Pitch
	if w == 0 {
		w = 1
	}
	if p == 0 {
		p = 1
	}
	return w * p
}

// MatchContext is the per-match static situational data.
type MatchContext struct {
	MatchID           uuid.UUID
	Importance        Importance
	RegulationMinutes int
	Home              bool
	OppositionQuality float64 // 0-100, 50 is an average opponent
	Conditions        Conditions
}

// Validate checks the context is well formed. Returns an error wrapping
// ErrEmptyContext on zero duration or malformed fields.
func (c MatchContext) Validate() error {
	if c.MatchID == uuid.Nil {
		return fmt.Errorf("%w: match id is nil", ErrEmptyContext)
	}
	if c.RegulationMinutes <= 0 {
		return fmt.Errorf("%w: regulation minutes %d", ErrEmptyContext, c.RegulationMinutes)
	}
	if c.Importance < Friendly || c.Importance > Final {
		return fmt.Errorf("%w: unknown importance tier %d", ErrEmptyContext, int(c.Importance))
	}
	if c.OppositionQuality < 0 || c.OppositionQuality > 100 {
		return fmt.Errorf("%w: opposition quality %g outside [0,100]", ErrEmptyContext, c.OppositionQuality)
	}
	if c.Conditions.Weather < 0 || c.Conditions.Pitch < 0 {
		return fmt.Errorf("%w: negative condition modifier", ErrEmptyContext)
	}
	return nil
}
