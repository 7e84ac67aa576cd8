package system

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
)

// StressInputSystem turns bound key presses into named world events.
type StressInputSystem struct {
	justPressed func(ebiten.Key) bool
}

func NewStressInputSystem() *StressInputSystem {
	return &StressInputSystem{justPressed: inpututil.IsKeyJustPressed}
}

func (s *StressInputSystem) Update(w *ecs.World) {
	if w == nil || s.justPressed == nil {
		return
	}

	ecs.ForEach(w, component.StressKeyBindingsComponent.Kind(), func(_ ecs.Entity, b *component.StressKeyBindings) {
		keys := make([]ebiten.Key, 0, len(b.Events))
		for k := range b.Events {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			if s.justPressed(k) {
				w.Events().Push(ecs.Event{Type: b.Events[k]})
			}
		}
	})
}
