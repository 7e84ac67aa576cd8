package system

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
	"github.com/milk9111/stressmeter/stress"
)

var frame = FrameStep(60)

func newMeterEntity(t *testing.T, w *ecs.World, variant stress.Variant) (ecs.Entity, *stress.Meter) {
	t.Helper()
	e := ecs.CreateEntity(w)
	m, err := stress.New(stress.Config{X: 10, Y: 40, Width: 30, Height: 200, Max: 100, Variant: variant}, stress.WithCuePlayer(NewCuePort(w, e)))
	if err != nil {
		t.Fatalf("new meter: %v", err)
	}
	if err := ecs.Add(w, e, component.StressMeterComponent.Kind(), &component.StressMeter{Meter: m}); err != nil {
		t.Fatalf("add meter: %v", err)
	}
	return e, m
}

func TestStressMeterSystemRequests(t *testing.T) {
	w := ecs.NewWorld()
	e, m := newMeterEntity(t, w, stress.Base)
	sys := NewStressMeterSystem(frame)

	for i := 0; i < 120; i++ {
		sys.Update(w)
	}
	if m.Value() != 0 || m.State() != stress.Idle {
		t.Fatalf("meter should stay idle without a start request, got %v %v", m.Value(), m.State())
	}

	RequestStressStart(w, e)
	RequestStressChange(w, e, 30)
	RequestStressChange(w, e, -5)
	sys.Update(w)

	if m.State() != stress.Running {
		t.Fatalf("expected running after start request")
	}
	if m.Value() != 25 {
		t.Fatalf("expected accumulated change 25, got %v", m.Value())
	}
	if ecs.Has(w, e, component.StressStartRequestComponent.Kind()) || ecs.Has(w, e, component.StressChangeRequestComponent.Kind()) {
		t.Fatalf("requests should be consumed")
	}

	// the start frame plus 58 more is one frame short of a second
	for i := 0; i < 58; i++ {
		sys.Update(w)
	}
	if m.Value() != 25 {
		t.Fatalf("expected no tick before a second of frames, got %v", m.Value())
	}
	sys.Update(w)
	if m.Value() != 26 {
		t.Fatalf("expected one tick after a second of frames, got %v", m.Value())
	}
}

func TestFrameStep(t *testing.T) {
	cases := []struct {
		name string
		tps  int
		want time.Duration
	}{
		{"sixty", 60, 16666667 * time.Nanosecond},
		{"thirty", 30, 33333333 * time.Nanosecond},
		{"unset_uses_default", 0, 16666667 * time.Nanosecond},
		{"sync_with_fps", ebiten.SyncWithFPS, 16666667 * time.Nanosecond},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FrameStep(c.tps); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestFrameStepTicksOnTime(t *testing.T) {
	cases := []struct {
		name    string
		variant stress.Variant
		frames  int
	}{
		{"base", stress.Base, 60},
		{"elaborated", stress.Elaborated, 42},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := stress.New(stress.Config{Width: 30, Height: 200, Max: 100, Variant: c.variant})
			if err != nil {
				t.Fatal(err)
			}
			m.Start()
			step := FrameStep(60)
			for i := 0; i < c.frames-1; i++ {
				_ = m.Update(step)
			}
			if m.Value() != 0 {
				t.Fatalf("ticked a frame early, got %v", m.Value())
			}
			_ = m.Update(step)
			if m.Value() != 1 {
				t.Fatalf("expected one tick after %d frames, got %v", c.frames, m.Value())
			}
		})
	}
}

func TestCuePortFlagsAudioAndFlash(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	audioComp := &component.Audio{
		Names:   []string{"other", "stress_cue"},
		Players: []*audio.Player{nil, nil},
		Volume:  []float64{1, 0.5},
		Play:    []bool{false, false},
		Stop:    []bool{false, false},
	}
	_ = ecs.Add(w, e, component.AudioComponent.Kind(), audioComp)
	_ = ecs.Add(w, e, component.CueFlashComponent.Kind(), &component.CueFlash{Color: color.White, Duration: 0.5, Peak: 1})

	port := NewCuePort(w, e)
	if err := port.PlayCue("stress_cue"); err != nil {
		t.Fatalf("play cue: %v", err)
	}
	if audioComp.Play[0] || !audioComp.Play[1] {
		t.Fatalf("expected only the cue slot flagged, got %v", audioComp.Play)
	}
	flash, _ := ecs.Get(w, e, component.CueFlashComponent.Kind())
	if flash.Tween == nil || flash.Alpha != 1 {
		t.Fatalf("expected flash started at peak, got %+v", flash)
	}

	if err := port.PlayCue("missing"); !errors.Is(err, ErrUnknownCue) {
		t.Fatalf("expected ErrUnknownCue, got %v", err)
	}

	NewAudioSystem(true).Update(w)
	if audioComp.Play[1] {
		t.Fatalf("audio system should clear play flags")
	}
}

func TestCuePortWithoutAudioIsSilent(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := NewCuePort(w, e).PlayCue("stress_cue"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
}

func TestElaboratedMeterTriggersCueThroughSystem(t *testing.T) {
	w := ecs.NewWorld()
	e, m := newMeterEntity(t, w, stress.Elaborated)
	audioComp := &component.Audio{
		Names:   []string{stress.DefaultCueName},
		Players: []*audio.Player{nil},
		Volume:  []float64{1},
		Play:    []bool{false},
		Stop:    []bool{false},
	}
	_ = ecs.Add(w, e, component.AudioComponent.Kind(), audioComp)

	m.ChangeStress(99)
	RequestStressStart(w, e)
	sys := NewStressMeterSystem(frame)

	// stress ticks to 100 at frame 42, so the cue interval is just under a second
	for i := 0; i < 59; i++ {
		sys.Update(w)
	}
	if audioComp.Play[0] {
		t.Fatalf("cue flagged before a second of frames")
	}
	sys.Update(w)
	if !audioComp.Play[0] {
		t.Fatalf("expected cue flagged after a second at high stress")
	}
}

func TestCueFlashSystemFades(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.CueFlashComponent.Kind(), &component.CueFlash{Duration: 0.1, Peak: 1})
	if err := NewCuePort(w, e).PlayCue("x"); err != nil {
		t.Fatal(err)
	}

	sys := NewCueFlashSystem(0.05)
	sys.Update(w)
	flash, _ := ecs.Get(w, e, component.CueFlashComponent.Kind())
	if flash.Alpha <= 0 || flash.Alpha >= 1 {
		t.Fatalf("expected partial fade, got %v", flash.Alpha)
	}
	sys.Update(w)
	sys.Update(w)
	if flash.Tween != nil || flash.Alpha != 0 {
		t.Fatalf("expected flash finished, got %+v", flash)
	}
}

func TestStressInputSystemPushesBoundEvents(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.StressKeyBindingsComponent.Kind(), &component.StressKeyBindings{Events: map[ebiten.Key]string{
		ebiten.KeyH:     "hazard",
		ebiten.KeyR:     "rest",
		ebiten.KeySpace: "start",
	}})

	pressed := map[ebiten.Key]bool{ebiten.KeyH: true, ebiten.KeySpace: true}
	sys := &StressInputSystem{justPressed: func(k ebiten.Key) bool { return pressed[k] }}
	sys.Update(w)

	events := w.Events().Drain()
	got := map[string]bool{}
	for _, evt := range events {
		got[evt.Type] = true
	}
	if len(events) != 2 || !got["hazard"] || !got["start"] {
		t.Fatalf("expected hazard and start events, got %v", events)
	}
}

type rectCall struct {
	x, y, w, h float64
	c          color.Color
}

type recordingSurface struct {
	fills   []rectCall
	strokes []rectCall
	texts   []string
}

func (r *recordingSurface) FillRect(x, y, w, h float64, c color.Color) {
	r.fills = append(r.fills, rectCall{x, y, w, h, c})
}

func (r *recordingSurface) StrokeRect(x, y, w, h, _ float64, c color.Color) {
	r.strokes = append(r.strokes, rectCall{x, y, w, h, c})
}

func (r *recordingSurface) DrawText(s string, _, _ float64, _ color.Color) {
	r.texts = append(r.texts, s)
}

func (r *recordingSurface) MeasureText(s string) (float64, float64) {
	return float64(len(s)) * 7, 13
}

func TestDrawMetersOrderAndFlash(t *testing.T) {
	w := ecs.NewWorld()

	top := ecs.CreateEntity(w)
	topMeter, _ := stress.New(stress.Config{X: 100, Y: 0, Width: 10, Height: 100, Max: 10})
	_ = ecs.Add(w, top, component.StressMeterComponent.Kind(), &component.StressMeter{Meter: topMeter})
	_ = ecs.Add(w, top, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 5})
	_ = ecs.Add(w, top, component.CueFlashComponent.Kind(), &component.CueFlash{Color: color.White, Alpha: 0.5})

	bottom := ecs.CreateEntity(w)
	bottomMeter, _ := stress.New(stress.Config{X: 0, Y: 0, Width: 10, Height: 100, Max: 10, Variant: stress.Elaborated})
	bottomMeter.ChangeStress(5)
	_ = ecs.Add(w, bottom, component.StressMeterComponent.Kind(), &component.StressMeter{Meter: bottomMeter})
	_ = ecs.Add(w, bottom, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 1})

	s := &recordingSurface{}
	drawMeters(w, s)

	if len(s.fills) != 1 || s.fills[0].h != 50 {
		t.Fatalf("expected the lower layer's half fill first, got %+v", s.fills)
	}
	if len(s.strokes) != 3 {
		t.Fatalf("expected two borders and one flash, got %d", len(s.strokes))
	}
	if s.strokes[0].x != 0 || s.strokes[1].x != 100 {
		t.Fatalf("expected layer 1 drawn before layer 5, got %+v", s.strokes)
	}
	flash := s.strokes[2].c.(color.NRGBA)
	if flash.A != 127 {
		t.Fatalf("expected half alpha flash, got %v", flash)
	}
	if len(s.texts) != 1 || s.texts[0] != "50%" {
		t.Fatalf("expected one 50%% label, got %v", s.texts)
	}
}

func TestFlashColor(t *testing.T) {
	cases := []struct {
		name  string
		in    color.Color
		alpha float32
		want  uint8
	}{
		{"full", color.NRGBA{R: 255, A: 255}, 1, 255},
		{"zero", color.NRGBA{R: 255, A: 255}, 0, 0},
		{"over", color.NRGBA{R: 255, A: 255}, 3, 255},
		{"nil_color", nil, 1, 255},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := flashColor(c.in, c.alpha); got.A != c.want {
				t.Fatalf("expected alpha %d, got %d", c.want, got.A)
			}
		})
	}
}
