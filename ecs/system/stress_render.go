package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stressmeter/common"
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
	"github.com/milk9111/stressmeter/render"
	"github.com/milk9111/stressmeter/stress"
)

const flashStrokeWidth = 2.0

// StressRenderSystem draws meters in RenderLayer order with their cue flash on top.
type StressRenderSystem struct{}

func NewStressRenderSystem() *StressRenderSystem { return &StressRenderSystem{} }

func (s *StressRenderSystem) Update(*ecs.World) {}

func (s *StressRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	drawMeters(w, render.NewEbitenSurface(screen).WithAntiAlias(true))
}

type meterDraw struct {
	entity ecs.Entity
	layer  int
	meter  *stress.Meter
}

func drawMeters(w *ecs.World, surface stress.Surface) {
	var items []meterDraw
	ecs.ForEach(w, component.StressMeterComponent.Kind(), func(e ecs.Entity, sm *component.StressMeter) {
		if sm.Meter == nil {
			return
		}
		rl, _ := ecs.Get(w, e, component.RenderLayerComponent.Kind())
		items = append(items, meterDraw{entity: e, layer: rl.Order(), meter: sm.Meter})
	})

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].entity < items[j].entity
	})

	for _, it := range items {
		it.meter.Draw(surface)

		flash, ok := ecs.Get(w, it.entity, component.CueFlashComponent.Kind())
		if !ok || flash.Alpha <= 0 {
			continue
		}
		x, y, width, height := it.meter.Bounds()
		surface.StrokeRect(x, y, width, height, flashStrokeWidth, flashColor(flash.Color, flash.Alpha))
	}
}

// flashColor fades c by alpha in [0, 1].
func flashColor(c color.Color, alpha float32) color.NRGBA {
	if c == nil {
		c = color.White
	}
	base := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha = min(max(alpha, 0), 1)
	base.A = uint8(common.Lerp(0, float32(base.A), alpha))
	return base
}
