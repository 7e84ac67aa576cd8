package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/stressmeter/render"
	"github.com/milk9111/stressmeter/stress"
)

const (
	stressStep = 10
	meterLeft  = 4
	meterTop   = 4
	meterWidth = 6
	helpText   = "s start  +/- stress  q quit"
)

var helpColor = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}

type app struct {
	screen  tcell.Screen
	surface *render.TermSurface
	meter   *stress.Meter
	last    time.Time

	variant   stress.Variant
	maxStress float64
	cues      stress.CuePlayer
}

func newApp(screen tcell.Screen, variant stress.Variant, maxStress float64, cues stress.CuePlayer) (*app, error) {
	a := &app{
		screen:    screen,
		surface:   render.NewTermSurface(screen),
		variant:   variant,
		maxStress: maxStress,
		cues:      cues,
	}
	if err := a.layout(); err != nil {
		return nil, err
	}
	return a, nil
}

// layout sizes the meter to the screen height; one cell is one layout unit.
// A rebuilt meter keeps the value and state of the one it replaces.
func (a *app) layout() error {
	_, h := a.screen.Size()
	height := float64(h - meterTop - 3)
	if height < 3 {
		height = 3
	}

	var opts []stress.Option
	if a.cues != nil {
		opts = append(opts, stress.WithCuePlayer(a.cues))
	}
	m, err := stress.New(stress.Config{
		X:       meterLeft,
		Y:       meterTop,
		Width:   meterWidth,
		Height:  height,
		Max:     a.maxStress,
		Variant: a.variant,
	}, opts...)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if prev := a.meter; prev != nil {
		if prev.State() == stress.Running {
			m.Start()
		}
		m.ChangeStress(prev.Value())
	}
	a.meter = m
	return nil
}

// handleKey applies a key press and reports whether the app should keep running.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 's':
			a.meter.Start()
		case '+', '=':
			a.meter.ChangeStress(stressStep)
		case '-', '_':
			a.meter.ChangeStress(-stressStep)
		}
	}
	return true
}

// tick advances the meter by the time since the previous tick.
func (a *app) tick(now time.Time) error {
	if a.last.IsZero() {
		a.last = now
		return nil
	}
	dt := now.Sub(a.last)
	a.last = now
	return a.meter.Update(dt)
}

func (a *app) draw() {
	a.screen.Clear()
	a.meter.Draw(a.surface)
	_, h := a.screen.Size()
	status := fmt.Sprintf("%s  %s  %.0f/%.0f  %.0f%%", helpText, a.meter.State(), a.meter.Value(), a.meter.Max(), a.meter.Percent()*100)
	a.surface.DrawText(status, 1, float64(h-1), helpColor)
	a.screen.Show()
}
