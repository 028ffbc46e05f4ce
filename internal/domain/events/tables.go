package events

import "github.com/MaxTheDreaded/player-manager/internal/domain/model"

// positionWeight biases how often a role sees the ball.
var positionWeight = map[model.Role]float64{
	model.RoleGoalkeeper:    0.45,
	model.RoleCentreBack:    0.75,
	model.RoleFullBack:      0.85,
	model.RoleDefensiveMid:  0.9,
	model.RoleCentreMid:     1.0,
	model.RoleWideMid:       0.95,
	model.RoleAttackingMid:  1.05,
	model.RoleWinger:        0.95,
	model.RoleCentreForward: 0.9,
}

// tacticalRoleFactor captures how much of a role's job is on-ball.
var tacticalRoleFactor = map[model.Role]float64{
	model.RoleGoalkeeper:    0.9,
	model.RoleCentreBack:    0.95,
	model.RoleFullBack:      1.0,
	model.RoleDefensiveMid:  1.0,
	model.RoleCentreMid:     1.05,
	model.RoleWideMid:       1.0,
	model.RoleAttackingMid:  1.05,
	model.RoleWinger:        1.0,
	model.RoleCentreForward: 1.0,
}

// categoryWeights biases category selection per role. Goalkeeping never
// appears for outfield roles.
var categoryWeights = map[model.Role]map[model.Category]float64{
	model.RoleGoalkeeper: {
		model.Goalkeeping: 8, model.Defensive: 1, model.Transition: 1, model.OffBall: 1,
	},
	model.RoleCentreBack: {
		model.Defensive: 6, model.Transition: 2, model.OffBall: 2, model.Attacking: 1,
	},
	model.RoleFullBack: {
		model.Defensive: 4, model.Transition: 2, model.OffBall: 2, model.Attacking: 3,
	},
	model.RoleDefensiveMid: {
		model.Defensive: 4, model.Transition: 3, model.OffBall: 2, model.Attacking: 2,
	},
	model.RoleCentreMid: {
		model.Defensive: 2, model.Transition: 3, model.OffBall: 2, model.Attacking: 4,
	},
	model.RoleWideMid: {
		model.Defensive: 2, model.Transition: 2, model.OffBall: 2, model.Attacking: 5,
	},
	model.RoleAttackingMid: {
		model.Defensive: 1, model.Transition: 2, model.OffBall: 2, model.Attacking: 6,
	},
	model.RoleWinger: {
		model.Defensive: 1, model.Transition: 2, model.OffBall: 2, model.Attacking: 6,
	},
	model.RoleCentreForward: {
		model.Defensive: 1, model.Transition: 1, model.OffBall: 3, model.Attacking: 7,
	},
}

// action pairs a success outcome with its failure outcome and names the
// attribute that resolves the roll.
type action struct {
	success model.EventType
	failure model.EventType
	weight  func(s model.ParticipantSnapshot) float64 // selection weight
	skill   func(s model.ParticipantSnapshot) float64 // resolving attribute
	shot    bool
}

// actionsByCategory lists the candidate actions per category. Selection
// weight scales with the participant's relevant strengths, so a strong
// finisher sees more shot attempts conditional on an attacking event.
var actionsByCategory = map[model.Category][]action{
	model.Attacking: {
		{
			success: model.ShotOnTarget, failure: model.ShotOffTarget, shot: true,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + s.Technical.Shooting/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Technical.Shooting },
		},
		{
			success: model.KeyPass, failure: model.TurnoverLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + (s.Technical.Passing+s.Mental.Vision)/100 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Technical.Passing },
		},
		{
			success: model.DribbleWon, failure: model.DribbleLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + s.Technical.Dribbling/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Technical.Dribbling },
		},
		{
			success: model.CrossCompleted, failure: model.CrossLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.5 + s.Technical.Crossing/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Technical.Crossing },
		},
		{
			success: model.ThroughBall, failure: model.TurnoverLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.5 + s.Mental.Vision/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Technical.Passing + s.Mental.Vision) / 2 },
		},
	},
	model.Defensive: {
		{
			success: model.TackleWon, failure: model.TackleLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + s.Technical.Tackling/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Technical.Tackling },
		},
		{
			success: model.Interception, failure: model.MarkingError,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + s.Mental.Positioning/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Mental.Positioning + s.Mental.Vision) / 2 },
		},
		{
			success: model.Clearance, failure: model.DefensiveError,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.8 + s.Mental.Positioning/100 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Mental.Composure },
		},
		{
			success: model.AerialWon, failure: model.AerialLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.5 + s.Physical.Jumping/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Physical.Jumping + s.Physical.Strength) / 2 },
		},
		{
			success: model.Block, failure: model.DefensiveError,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.5 + s.Mental.Determination/100 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Mental.Positioning },
		},
	},
	model.Goalkeeping: {
		{
			success: model.Save, failure: model.GoalConceded,
			weight: func(s model.ParticipantSnapshot) float64 { return 3 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Physical.Agility + s.Mental.Positioning) / 2 },
		},
		{
			success: model.ReflexSave, failure: model.GoalConceded,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.5 + s.Physical.Agility/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Physical.Agility },
		},
		{
			success: model.OneOnOneSave, failure: model.GoalConceded,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.4 + s.Mental.Composure/100 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Mental.Composure + s.Hidden.BigMatchTrait) / 2 },
		},
		{
			success: model.ClaimCross, failure: model.PunchClear,
			weight: func(s model.ParticipantSnapshot) float64 { return 1.5 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Physical.Jumping },
		},
		{
			success: model.SweeperClearance, failure: model.DefensiveError,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.3 + s.Physical.Pace/100 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Physical.Pace },
		},
	},
	model.Transition: {
		{
			success: model.BallRecovery, failure: model.TurnoverLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + s.Mental.WorkRate/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Mental.WorkRate + s.Mental.Positioning) / 2 },
		},
		{
			success: model.CounterAttack, failure: model.TurnoverLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.5 + s.Physical.Pace/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Physical.Pace + s.Technical.FirstTouch) / 2 },
		},
		{
			success: model.TurnoverWon, failure: model.TurnoverLost,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Technical.FirstTouch },
		},
	},
	model.OffBall: {
		{
			success: model.PressWon, failure: model.PressBroken,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + s.Mental.WorkRate/50 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Mental.WorkRate + s.Physical.Stamina) / 2 },
		},
		{
			success: model.OffBallRun, failure: model.MarkingError,
			weight: func(s model.ParticipantSnapshot) float64 { return 1 + s.Mental.Vision/100 },
			skill:  func(s model.ParticipantSnapshot) float64 { return s.Mental.Teamwork },
		},
		{
			success: model.TrackingBackStop, failure: model.MarkingError,
			weight: func(s model.ParticipantSnapshot) float64 { return 0.5 + s.Mental.WorkRate/100 },
			skill:  func(s model.ParticipantSnapshot) float64 { return (s.Mental.WorkRate + s.Mental.Positioning) / 2 },
		},
	},
}
