package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
	"github.com/milk9111/stressmeter/ecs/system"
	"github.com/milk9111/stressmeter/prefabs"
	"github.com/milk9111/stressmeter/stress"
)

const defaultFlashDuration = 0.3

// BuildOptions tweaks how a prefab becomes an entity.
type BuildOptions struct {
	// Variant overrides the prefab variant when non-empty.
	Variant string
	// Muted skips loading audio clips; the cue still drives the flash.
	Muted bool
}

// NewStressMeter creates a stress meter entity from its prefab. On error no
// entity is left behind.
func NewStressMeter(w *ecs.World, spec *prefabs.StressMeterSpec, opts BuildOptions) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("stress meter: nil spec")
	}
	if opts.Variant != "" {
		override := *spec
		override.Variant = opts.Variant
		spec = &override
	}

	cfg, err := spec.Config()
	if err != nil {
		return 0, fmt.Errorf("stress meter: %w", err)
	}

	e := ecs.CreateEntity(w)
	if err := addStressMeterComponents(w, e, spec, cfg, opts); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func addStressMeterComponents(w *ecs.World, e ecs.Entity, spec *prefabs.StressMeterSpec, cfg stress.Config, opts BuildOptions) error {
	meter, err := stress.New(cfg, stress.WithCuePlayer(system.NewCuePort(w, e)))
	if err != nil {
		return fmt.Errorf("stress meter: %w", err)
	}
	if err := ecs.Add(w, e, component.StressMeterComponent.Kind(), &component.StressMeter{Meter: meter}); err != nil {
		return fmt.Errorf("stress meter: add meter component: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return fmt.Errorf("stress meter: add render layer: %w", err)
	}

	if !opts.Muted && cfg.Variant == stress.Elaborated {
		audioComp, err := buildAudioComponent(spec.Audio)
		if err != nil {
			return fmt.Errorf("stress meter: %w", err)
		}
		if audioComp != nil {
			if err := ecs.Add(w, e, component.AudioComponent.Kind(), audioComp); err != nil {
				return fmt.Errorf("stress meter: add audio: %w", err)
			}
		}
	}

	if spec.Flash != nil {
		flash := &component.CueFlash{Duration: spec.Flash.Duration, Peak: spec.Flash.Peak}
		if flash.Duration <= 0 {
			flash.Duration = defaultFlashDuration
		}
		if flash.Peak <= 0 {
			flash.Peak = 1
		}
		if spec.Flash.Color != nil {
			flash.Color = spec.Flash.Color.Color
		}
		if err := ecs.Add(w, e, component.CueFlashComponent.Kind(), flash); err != nil {
			return fmt.Errorf("stress meter: add cue flash: %w", err)
		}
	}

	if spec.Rules != "" {
		if err := ecs.Add(w, e, component.StressRulesComponent.Kind(), &component.StressRules{ScriptPath: spec.Rules}); err != nil {
			return fmt.Errorf("stress meter: add rules: %w", err)
		}
	}

	if len(spec.Keys) > 0 {
		bindings, err := parseKeyBindings(spec.Keys)
		if err != nil {
			return fmt.Errorf("stress meter: %w", err)
		}
		if err := ecs.Add(w, e, component.StressKeyBindingsComponent.Kind(), bindings); err != nil {
			return fmt.Errorf("stress meter: add key bindings: %w", err)
		}
	}

	return nil
}

func parseKeyBindings(keys map[string]string) (*component.StressKeyBindings, error) {
	out := &component.StressKeyBindings{Events: make(map[ebiten.Key]string, len(keys))}
	for name, event := range keys {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("key binding %q: %w", name, err)
		}
		out.Events[k] = event
	}
	return out, nil
}
