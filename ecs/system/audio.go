package system

import (
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
)

// AudioSystem starts and stops flagged clips, then clears the flags. A clip
// flagged while still playing restarts from the beginning.
type AudioSystem struct {
	muted bool
}

func NewAudioSystem(muted bool) *AudioSystem {
	return &AudioSystem{muted: muted}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Players), len(audioComp.Play), len(audioComp.Stop), len(audioComp.Volume))

		for i := 0; i < count; i++ {
			if audioComp.Stop[i] {
				if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
					player.Pause()
				}
				audioComp.Stop[i] = false
			}

			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			if a.muted {
				continue
			}

			if player := audioComp.Players[i]; player != nil {
				player.SetVolume(audioComp.Volume[i])
				_ = player.Rewind()
				player.Play()
			}
		}
	})
}
