// Package model contains the domain types passed between pipeline stages.
package model

// Position is the broad positional group a participant belongs to.
type Position int

const (
	Goalkeeper Position = iota
	Defender
	Midfielder
	Forward
)

func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "goalkeeper"
	case Defender:
		return "defender"
	case Midfielder:
		return "midfielder"
	case Forward:
		return "forward"
	default:
		return "unknown"
	}
}

// Role is the sub-role used by the responsibility tables. Every role maps
// to exactly one broad Position.
type Role int

const (
	RoleGoalkeeper Role = iota
	RoleCentreBack
	RoleFullBack
	RoleDefensiveMid
	RoleCentreMid
	RoleWideMid
	RoleAttackingMid
	RoleWinger
	RoleCentreForward
)

// roleCount is the number of defined roles; used for validation.
const roleCount = 9

// Position returns the broad positional group for the role.
func (r Role) Position() Position {
	switch r {
	case RoleGoalkeeper:
		return Goalkeeper
	case RoleCentreBack, RoleFullBack:
		return Defender
	case RoleDefensiveMid, RoleCentreMid, RoleWideMid, RoleAttackingMid:
		return Midfielder
	case RoleWinger, RoleCentreForward:
		return Forward
	default:
		return Midfielder
	}
}

func (r Role) String() string {
	switch r {
	case RoleGoalkeeper:
		return "GK"
	case RoleCentreBack:
		return "CB"
	case RoleFullBack:
		return "FB"
	case RoleDefensiveMid:
		return "DM"
	case RoleCentreMid:
		return "CM"
	case RoleWideMid:
		return "WM"
	case RoleAttackingMid:
		return "AM"
	case RoleWinger:
		return "WG"
	case RoleCentreForward:
		return "CF"
	default:
		return "unknown"
	}
}

// Importance is the competition importance tier of a match.
type Importance int

const (
	Friendly Importance = iota
	League
	Cup
	Final
)

func (i Importance) String() string {
	switch i {
	case Friendly:
		return "friendly"
	case League:
		return "league"
	case Cup:
		return "cup"
	case Final:
		return "final"
	default:
		return "unknown"
	}
}

// Half identifies which period of the match an event occurred in.
type Half int

const (
	FirstHalf Half = iota
	SecondHalf
	ExtraTime
)

// HalfForMinute returns the half a given minute falls into for a match
// with the given regulation length.
func HalfForMinute(minute, regulation int) Half {
	switch {
	case minute <= regulation/2:
		return FirstHalf
	case minute <= regulation:
		return SecondHalf
	default:
		return ExtraTime
	}
}

// PitchZone is the coarse area of the pitch where an event happened.
type PitchZone int

const (
	DefensiveThird PitchZone = iota
	MiddleThird
	FinalThird
	PenaltyBox
)

func (z PitchZone) String() string {
	switch z {
	case DefensiveThird:
		return "defensive_third"
	case MiddleThird:
		return "middle_third"
	case FinalThird:
		return "final_third"
	case PenaltyBox:
		return "box"
	default:
		return "unknown"
	}
}

// Standing is the participant's team score state relative to the opponent.
type Standing int

const (
	Drawing Standing = iota
	Leading
	Trailing
)

// Involvement classifies how much of the match a participant was part of.
type Involvement int

const (
	VeryLowInvolvement Involvement = iota
	LowInvolvement
	NormalInvolvement
	HighInvolvement
)

func (v Involvement) String() string {
	switch v {
	case VeryLowInvolvement:
		return "very_low"
	case LowInvolvement:
		return "low"
	case NormalInvolvement:
		return "normal"
	case HighInvolvement:
		return "high"
	default:
		return "unknown"
	}
}
