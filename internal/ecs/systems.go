package ecs

import (
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdatePhysics steps the rigid body simulation.
func NewUpdatePhysics(dt time.Duration) ecs.System {
	return func(e *ecs.ECS) {
		if entry, ok := Space.First(e.World); ok {
			Space.Get(entry).World.Step(dt)
		}
	}
}

// NewUpdateMotion ticks every player's movement controller. The controller
// polls its input and senses the probe itself.
func NewUpdateMotion(dt time.Duration) ecs.System {
	return func(e *ecs.ECS) {
		Motion.Each(e.World, func(entry *donburi.Entry) {
			Motion.Get(entry).Controller.Tick(dt)
		})
	}
}

// UpdateAssist applies the enhanced jump using this tick's jump button.
func UpdateAssist(e *ecs.ECS) {
	Assist.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(Motion) {
			return
		}
		Assist.Get(entry).Apply(Motion.Get(entry).Controller.Input().JumpHeld)
	})
}

// NewUpdateFeedback advances camera shake, ghost trail and ripples.
func NewUpdateFeedback(dt time.Duration) ecs.System {
	return func(e *ecs.ECS) {
		Feedback.Each(e.World, func(entry *donburi.Entry) {
			Feedback.Get(entry).Update(dt)
		})
	}
}

// UpdateAnimation picks the pose from the controller state and body velocity.
func UpdateAnimation(e *ecs.ECS) {
	Animation.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(Motion) || !entry.HasComponent(Body) {
			return
		}
		c := Motion.Get(entry).Controller
		Animation.Get(entry).Update(c.State(), Body.Get(entry).Velocity(), c.Environment())
	})
}
