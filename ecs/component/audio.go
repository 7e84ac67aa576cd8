package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named clips. Systems set Play or Stop and AudioSystem clears them.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

var AudioComponent = NewComponent[Audio]()

// Index returns the clip slot for name, or -1.
func (a *Audio) Index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}
