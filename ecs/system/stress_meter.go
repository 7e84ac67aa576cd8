package system

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
)

// StressMeterSystem applies queued start/change requests and advances every
// meter by a fixed step per update.
type StressMeterSystem struct {
	step time.Duration
}

// NewStressMeterSystem advances meters by step each frame, normally 1/TPS.
func NewStressMeterSystem(step time.Duration) *StressMeterSystem {
	return &StressMeterSystem{step: step}
}

// FrameStep is the game time of one update at tps ticks per second, rounded
// so that tps frames cover at least a full second.
func FrameStep(tps int) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Duration(math.Round(float64(time.Second) / float64(tps)))
}

// RequestStressStart queues a Start for the meter on e.
func RequestStressStart(w *ecs.World, e ecs.Entity) {
	_ = ecs.Add(w, e, component.StressStartRequestComponent.Kind(), &component.StressStartRequest{})
}

// RequestStressChange adds amount to the change queued for the meter on e.
func RequestStressChange(w *ecs.World, e ecs.Entity, amount float64) {
	if req, ok := ecs.Get(w, e, component.StressChangeRequestComponent.Kind()); ok {
		req.Amount += amount
		return
	}
	_ = ecs.Add(w, e, component.StressChangeRequestComponent.Kind(), &component.StressChangeRequest{Amount: amount})
}

func (s *StressMeterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.StressMeterComponent.Kind(), func(e ecs.Entity, sm *component.StressMeter) {
		if sm == nil || sm.Meter == nil {
			return
		}

		if ecs.Remove(w, e, component.StressStartRequestComponent.Kind()) {
			sm.Meter.Start()
		}

		if req, ok := ecs.Get(w, e, component.StressChangeRequestComponent.Kind()); ok {
			sm.Meter.ChangeStress(req.Amount)
			ecs.Remove(w, e, component.StressChangeRequestComponent.Kind())
		}

		if err := sm.Meter.Update(s.step); err != nil {
			log.Printf("stress: entity=%s: %v", e, err)
		}
	})
}
