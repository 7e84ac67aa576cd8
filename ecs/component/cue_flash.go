package component

import (
	"image/color"

	"github.com/tanema/gween"
)

// CueFlash brightens the meter border each time the audio cue plays.
type CueFlash struct {
	Color    color.Color
	Duration float32
	Peak     float32

	Tween *gween.Tween
	Alpha float32
}

var CueFlashComponent = NewComponent[CueFlash]()
