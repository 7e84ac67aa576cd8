package system

import (
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
)

// CueFlashSystem advances running cue flash tweens by a fixed step in seconds.
type CueFlashSystem struct {
	step float32
}

func NewCueFlashSystem(step float32) *CueFlashSystem {
	return &CueFlashSystem{step: step}
}

func (s *CueFlashSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.CueFlashComponent.Kind(), func(_ ecs.Entity, flash *component.CueFlash) {
		if flash.Tween == nil {
			return
		}
		alpha, done := flash.Tween.Update(s.step)
		flash.Alpha = alpha
		if done {
			flash.Tween = nil
			flash.Alpha = 0
		}
	})
}
