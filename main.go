package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stressmeter/assets"
	"github.com/milk9111/stressmeter/common"
	"github.com/milk9111/stressmeter/prefabs"
)

func main() {
	prefab := flag.String("prefab", "stress_meter.yaml", "meter prefab name in prefabs/")
	variant := flag.String("variant", "", "override the prefab variant (base or elaborated)")
	watch := flag.Bool("watch", false, "rebuild the meter when prefabs or scripts change on disk")
	muted := flag.Bool("mute", false, "disable the audio cue")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("stress meter")

	if !*muted {
		assets.AudioContext()
	}

	game, err := NewGame(Options{
		Prefab:  *prefab,
		Variant: *variant,
		Muted:   *muted,
		Watch:   *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	log.Printf("loaded %s from %s", *prefab, prefabs.DiskDir)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
