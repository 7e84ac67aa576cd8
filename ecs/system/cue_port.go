package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var ErrUnknownCue = errors.New("cue: no audio clip with that name")

// CuePort plays a meter's cue through the Audio component of its entity and
// starts the entity's CueFlash. Entities without Audio play silently.
type CuePort struct {
	world  *ecs.World
	entity ecs.Entity
}

func NewCuePort(w *ecs.World, e ecs.Entity) *CuePort {
	return &CuePort{world: w, entity: e}
}

func (p *CuePort) PlayCue(name string) error {
	if p == nil || p.world == nil {
		return nil
	}

	if flash, ok := ecs.Get(p.world, p.entity, component.CueFlashComponent.Kind()); ok && flash.Duration > 0 {
		flash.Tween = gween.New(flash.Peak, 0, flash.Duration, ease.OutQuad)
		flash.Alpha = flash.Peak
	}

	audioComp, ok := ecs.Get(p.world, p.entity, component.AudioComponent.Kind())
	if !ok {
		return nil
	}
	idx := audioComp.Index(name)
	if idx < 0 || idx >= len(audioComp.Play) {
		return fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	audioComp.Play[idx] = true
	return nil
}
