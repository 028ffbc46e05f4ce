package model

// Category partitions all event types into six closed groups.
type Category int

const (
	Attacking Category = iota
	Defensive
	Goalkeeping
	Transition
	Discipline
	OffBall
)

func (c Category) String() string {
	switch c {
	case Attacking:
		return "attacking"
	case Defensive:
		return "defensive"
	case Goalkeeping:
		return "goalkeeping"
	case Transition:
		return "transition"
	case Discipline:
		return "discipline"
	case OffBall:
		return "off_ball"
	default:
		return "unknown"
	}
}

// EventType is the closed enumeration of all in-match actions.
type EventType int

const (
	// Attacking
	Goal EventType = iota
	ShotOnTarget
	ShotOffTarget
	MissedBigChance
	KeyPass
	Assist
	DribbleWon
	DribbleLost
	CrossCompleted
	CrossLost
	ThroughBall
	PenaltyWon
	PenaltyMissed

	// Defensive
	TackleWon
	TackleLost
	Interception
	Block
	Clearance
	AerialWon
	AerialLost
	LastManTackle
	GoalLineClearance
	DefensiveError

	// Goalkeeping
	Save
	ReflexSave
	OneOnOneSave
	PenaltySave
	ClaimCross
	PunchClear
	SweeperClearance
	GoalConceded

	// Transition
	BallRecovery
	CounterAttack
	TurnoverWon
	TurnoverLost

	// Discipline
	FoulCommitted
	YellowCard
	SecondYellow
	RedCard
	PenaltyConceded
	Injury

	// Off-ball
	PressWon
	PressBroken
	OffBallRun
	TrackingBackStop
	MarkingError

	eventTypeCount
)

var eventTypeNames = map[EventType]string{
	Goal:              "goal",
	ShotOnTarget:      "shot_on_target",
	ShotOffTarget:     "shot_off_target",
	MissedBigChance:   "missed_big_chance",
	KeyPass:           "key_pass",
	Assist:            "assist",
	DribbleWon:        "dribble_won",
	DribbleLost:       "dribble_lost",
	CrossCompleted:    "cross_completed",
	CrossLost:         "cross_lost",
	ThroughBall:       "through_ball",
	PenaltyWon:        "penalty_won",
	PenaltyMissed:     "penalty_missed",
	TackleWon:         "tackle_won",
	TackleLost:        "tackle_lost",
	Interception:      "interception",
	Block:             "block",
	Clearance:         "clearance",
	AerialWon:         "aerial_won",
	AerialLost:        "aerial_lost",
	LastManTackle:     "last_man_tackle",
	GoalLineClearance: "goal_line_clearance",
	DefensiveError:    "defensive_error",
	Save:              "save",
	ReflexSave:        "reflex_save",
	OneOnOneSave:      "one_on_one_save",
	PenaltySave:       "penalty_save",
	ClaimCross:        "claim_cross",
	PunchClear:        "punch_clear",
	SweeperClearance:  "sweeper_clearance",
	GoalConceded:      "goal_conceded",
	BallRecovery:      "ball_recovery",
	CounterAttack:     "counter_attack",
	TurnoverWon:       "turnover_won",
	TurnoverLost:      "turnover_lost",
	FoulCommitted:     "foul_committed",
	YellowCard:        "yellow_card",
	SecondYellow:      "second_yellow",
	RedCard:           "red_card",
	PenaltyConceded:   "penalty_conceded",
	Injury:            "injury",
	PressWon:          "press_won",
	PressBroken:       "press_broken",
	OffBallRun:        "off_ball_run",
	TrackingBackStop:  "tracking_back_stop",
	MarkingError:      "marking_error",
}

func (t EventType) String() string {
	if n, ok := eventTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether t is a defined event type.
func (t EventType) Valid() bool {
	return t >= Goal && t < eventTypeCount
}

// Category returns the closed category the event type belongs to.
func (t EventType) Category() Category {
	switch {
	case t >= Goal && t <= PenaltyMissed:
		return Attacking
	case t >= TackleWon && t <= DefensiveError:
		return Defensive
	case t >= Save && t <= GoalConceded:
		return Goalkeeping
	case t >= BallRecovery && t <= TurnoverLost:
		return Transition
	case t >= FoulCommitted && t <= Injury:
		return Discipline
	default:
		return OffBall
	}
}

// IsGoal reports whether the event type represents a goal scored.
func (t EventType) IsGoal() bool { return t == Goal }

// IsAssist reports whether the event type represents an assist.
func (t EventType) IsAssist() bool { return t == Assist }

// IsShot reports whether the event type represents a shot attempt.
func (t EventType) IsShot() bool {
	switch t {
	case Goal, ShotOnTarget, ShotOffTarget, MissedBigChance, PenaltyMissed:
		return true
	default:
		return false
	}
}

// AllEventTypes returns every defined event type in declaration order.
func AllEventTypes() []EventType {
	out := make([]EventType, 0, int(eventTypeCount))
	for t := Goal; t < eventTypeCount; t++ {
		out = append(out, t)
	}
	return out
}
