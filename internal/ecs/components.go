package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/wallclimb/internal/application/animation"
	"github.com/younwookim/wallclimb/internal/application/assist"
	"github.com/younwookim/wallclimb/internal/application/feedback"
	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/infrastructure/physics"
)

// Player tags the controlled character.
var Player = donburi.NewTag().SetName("Player")

// SpaceData is the singleton holding the simulation and the stage it was
// built from.
type SpaceData struct {
	World *physics.World
	Stage *entity.Stage
}

var Space = donburi.NewComponentType[SpaceData]()

type MotionData struct {
	Controller *movement.Controller
}

var Motion = donburi.NewComponentType[MotionData]()

type BodyData struct {
	*physics.Body
}

var Body = donburi.NewComponentType[BodyData]()

type FeedbackData struct {
	*feedback.Set
}

var Feedback = donburi.NewComponentType[FeedbackData]()

type AssistData struct {
	*assist.BetterJump
}

var Assist = donburi.NewComponentType[AssistData]()

type AnimationData struct {
	*animation.Driver
}

var Animation = donburi.NewComponentType[AnimationData]()

// StatsData accumulates what the controller reported each tick.
type StatsData struct {
	Ticks    int
	States   map[motion.State]int
	Landings int
	Takeoffs int
	Changes  int
	Last     movement.Report
}

// Record adds one tick's report.
func (s *StatsData) Record(r movement.Report) {
	if s.States == nil {
		s.States = make(map[motion.State]int, len(motion.States))
	}
	s.Ticks++
	s.States[r.State]++
	if r.Landed {
		s.Landings++
	}
	if r.LeftGround {
		s.Takeoffs++
	}
	if r.State != r.Previous {
		s.Changes++
	}
	s.Last = r
}

var Stats = donburi.NewComponentType[StatsData]()
