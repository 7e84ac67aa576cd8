package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stressmeter/stress"
)

// StressMeter attaches a stress bar to an entity.
type StressMeter struct {
	Meter *stress.Meter
}

var StressMeterComponent = NewComponent[StressMeter]()

// StressStartRequest asks the stress system to start the meter on this entity.
// It is consumed on the next update.
type StressStartRequest struct{}

var StressStartRequestComponent = NewComponent[StressStartRequest]()

// StressChangeRequest accumulates manual adjustments made during a frame.
type StressChangeRequest struct {
	Amount float64
}

var StressChangeRequestComponent = NewComponent[StressChangeRequest]()

// StressRules points at a tengo script that turns gameplay events into
// stress adjustments.
type StressRules struct {
	ScriptPath string
}

var StressRulesComponent = NewComponent[StressRules]()

// StressKeyBindings maps keys to gameplay event names.
type StressKeyBindings struct {
	Events map[ebiten.Key]string
}

var StressKeyBindingsComponent = NewComponent[StressKeyBindings]()
