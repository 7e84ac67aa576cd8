package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/stressmeter/stress"
)

const frameRate = 30

func main() {
	variantName := flag.String("variant", "elaborated", "meter variant (base or elaborated)")
	maxStress := flag.Float64("max", 100, "maximum stress")
	muted := flag.Bool("mute", false, "disable the audio cue")
	flag.Parse()

	variant, err := stress.ParseVariant(*variantName)
	if err != nil {
		log.Fatal(err)
	}

	var cues stress.CuePlayer
	if !*muted {
		bc, err := newBeepCues()
		if err != nil {
			// Non-fatal, the meter runs silently
			log.Printf("audio init failed: %v", err)
		} else {
			defer bc.Close()
			cues = bc
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	a, err := newApp(screen, variant, *maxStress, cues)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	run(a)
	screen.Fini()
}

func run(a *app) {
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				if err := a.layout(); err != nil {
					log.Printf("resize: %v", err)
				}
				a.screen.Sync()
			}
		case now := <-ticker.C:
			if err := a.tick(now); err != nil {
				log.Printf("tick: %v", err)
			}
			a.draw()
		}
	}
}
