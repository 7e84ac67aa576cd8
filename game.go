package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stressmeter/common"
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
	"github.com/milk9111/stressmeter/ecs/entity"
	"github.com/milk9111/stressmeter/ecs/system"
	"github.com/milk9111/stressmeter/prefabs"
	"github.com/milk9111/stressmeter/stress"
)

var backgroundColor = color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff}

const helpText = "Space start  H hazard  R rest  C calm  Esc pause"

type Options struct {
	Prefab  string
	Variant string
	Muted   bool
	Watch   bool
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	rules     *system.StressRulesSystem

	meter   ecs.Entity
	prefab  string
	build   entity.BuildOptions
	started bool

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	step := system.FrameStep(ebiten.TPS())

	g := &Game{
		world:  ecs.NewWorld(),
		rules:  system.NewStressRulesSystem(),
		prefab: opts.Prefab,
		build:  entity.BuildOptions{Variant: opts.Variant, Muted: opts.Muted},
	}
	g.scheduler = ecs.NewScheduler(
		system.NewStressInputSystem(),
		g.rules,
		system.NewStressMeterSystem(step),
		system.NewCueFlashSystem(float32(step.Seconds())),
		system.NewAudioSystem(opts.Muted),
		system.NewStressRenderSystem(),
	)

	meter, err := g.spawnMeter()
	if err != nil {
		return nil, err
	}
	g.meter = meter
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts"))
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) spawnMeter() (ecs.Entity, error) {
	spec, err := prefabs.LoadStressMeterSpec(g.prefab)
	if err != nil {
		return 0, err
	}
	e, err := entity.NewStressMeter(g.world, spec, g.build)
	if err != nil {
		return 0, fmt.Errorf("game: spawn meter: %w", err)
	}
	return e, nil
}

// reloadMeter rebuilds the meter from its prefab, keeping value and state.
func (g *Game) reloadMeter() {
	prev, ok := ecs.Get(g.world, g.meter, component.StressMeterComponent.Kind())
	if !ok || prev.Meter == nil {
		return
	}

	next, err := g.spawnMeter()
	if err != nil {
		log.Printf("reload: keeping current meter: %v", err)
		return
	}
	if prev.Meter.State() == stress.Running {
		system.RequestStressStart(g.world, next)
	}
	system.RequestStressChange(g.world, next, prev.Meter.Value())

	ecs.DestroyEntity(g.world, g.meter)
	g.meter = next
	g.rules.Reset()
	log.Printf("reload: rebuilt %s", g.prefab)
}

// resetMeter starts a fresh meter at zero.
func (g *Game) resetMeter() {
	next, err := g.spawnMeter()
	if err != nil {
		log.Printf("reset: %v", err)
		return
	}
	ecs.DestroyEntity(g.world, g.meter)
	g.meter = next
	g.started = false
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			e := ecs.CreateEntity(g.world)
			_ = ecs.Add(g.world, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Path: name})
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) handleReloads() {
	reload := false
	ecs.ForEach(g.world, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest) {
		log.Printf("reload: %s changed", req.Path)
		reload = true
		ecs.DestroyEntity(g.world, e)
	})
	if reload {
		g.reloadMeter()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	g.handleReloads()

	if !g.started {
		system.RequestStressStart(g.world, g.meter)
		g.started = true
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.scheduler.Draw(g.world, screen)
	ebitenutil.DebugPrintAt(screen, helpText, 12, common.BaseHeight-24)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	g.watcher = nil
	return err
}
