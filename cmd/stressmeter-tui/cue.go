package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	cueSampleRate = beep.SampleRate(44100)
	cueTone       = 220.0
	cueLength     = 80 * time.Millisecond
)

// beepCues plays every cue as the same short sine tone on the speaker.
type beepCues struct {
	mu          sync.Mutex
	initialized bool
}

func newBeepCues() (*beepCues, error) {
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &beepCues{initialized: true}, nil
}

func (c *beepCues) PlayCue(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}

	sine, err := generators.SineTone(cueSampleRate, cueTone)
	if err != nil {
		return fmt.Errorf("cue %s: %w", name, err)
	}
	speaker.Play(beep.Take(cueSampleRate.N(cueLength), sine))
	return nil
}

func (c *beepCues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		speaker.Close()
		c.initialized = false
	}
}
