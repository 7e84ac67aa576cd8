package stress

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/milk9111/stressmeter/common"
)

var (
	ErrInvalidMax  = errors.New("stress: max must be positive")
	ErrInvalidSize = errors.New("stress: width and height must be positive")
)

// Variant selects the tick rate and whether the label and audio cue are used.
type Variant int

const (
	Base Variant = iota
	Elaborated
)

func (v Variant) String() string {
	switch v {
	case Base:
		return "base"
	case Elaborated:
		return "elaborated"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps a config name to a Variant. The empty string is Base.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "", "base":
		return Base, nil
	case "elaborated":
		return Elaborated, nil
	default:
		return Base, fmt.Errorf("stress: unknown variant %q", name)
	}
}

// State is the auto-increment state of a meter.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

const (
	DefaultBorderWidth = 3.0
	DefaultCueName     = "stress_cue"
)

var (
	DefaultFillColor   = color.RGBA{R: 255, A: 255}
	DefaultBorderColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// TickInterval returns the auto-increment period for a variant.
func TickInterval(v Variant) time.Duration {
	if v == Elaborated {
		return 700 * time.Millisecond
	}
	return time.Second
}

// CuePlayer plays a named one-shot sound. The host owns the audio device.
type CuePlayer interface {
	PlayCue(name string) error
}

// Config holds the construction-time settings of a meter. Zero colors, border
// width, tick interval and cue name fall back to defaults.
type Config struct {
	X, Y          float64
	Width, Height float64
	Max           float64
	Variant       Variant
	FillColor     color.Color
	BorderColor   color.Color
	BorderWidth   float64
	TickInterval  time.Duration
	CueName       string
}

type Option func(*Meter)

// WithCuePlayer sets the port used for the elaborated variant's audio cue.
func WithCuePlayer(p CuePlayer) Option {
	return func(m *Meter) {
		m.cues = p
	}
}

// Meter is a vertical bar that fills from its bottom edge as stress rises.
type Meter struct {
	x, y          float64
	width, height float64
	max           float64
	value         float64

	variant     Variant
	state       State
	tick        time.Duration
	sinceTick   time.Duration
	sinceCue    time.Duration
	cueName     string
	cues        CuePlayer
	fillColor   color.Color
	borderColor color.Color
	borderWidth float64
}

func New(cfg Config, opts ...Option) (*Meter, error) {
	if !(cfg.Max > 0) || math.IsInf(cfg.Max, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMax, cfg.Max)
	}
	if !(cfg.Width > 0) || !(cfg.Height > 0) {
		return nil, fmt.Errorf("%w: got %vx%v", ErrInvalidSize, cfg.Width, cfg.Height)
	}

	m := &Meter{
		x:           cfg.X,
		y:           cfg.Y,
		width:       cfg.Width,
		height:      cfg.Height,
		max:         cfg.Max,
		variant:     cfg.Variant,
		tick:        cfg.TickInterval,
		cueName:     cfg.CueName,
		fillColor:   cfg.FillColor,
		borderColor: cfg.BorderColor,
		borderWidth: cfg.BorderWidth,
	}
	if m.tick <= 0 {
		m.tick = TickInterval(cfg.Variant)
	}
	if m.cueName == "" {
		m.cueName = DefaultCueName
	}
	if m.fillColor == nil {
		m.fillColor = DefaultFillColor
	}
	if m.borderColor == nil {
		m.borderColor = DefaultBorderColor
	}
	if m.borderWidth <= 0 {
		m.borderWidth = DefaultBorderWidth
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m, nil
}

// Start arms the auto-increment. Calling it again restarts the tick window.
func (m *Meter) Start() {
	if m == nil {
		return
	}
	m.state = Running
	m.sinceTick = 0
}

// Update advances the meter by dt. At most one tick is applied per call no
// matter how far dt overshoots the interval. The returned error comes only
// from the cue player; the meter state has already advanced when it is set.
func (m *Meter) Update(dt time.Duration) error {
	if m == nil || m.state != Running || dt < 0 {
		return nil
	}

	m.sinceTick += dt
	if m.sinceTick >= m.tick {
		m.value = math.Min(m.max, m.value+1)
		m.sinceTick = 0
	}

	if m.variant != Elaborated {
		return nil
	}

	m.sinceCue += dt
	if m.sinceCue.Seconds() < CueInterval(m.value) {
		return nil
	}
	m.sinceCue = 0
	if m.cues == nil {
		return nil
	}
	if err := m.cues.PlayCue(m.cueName); err != nil {
		return fmt.Errorf("stress: play cue %q: %w", m.cueName, err)
	}
	return nil
}

// ChangeStress adds delta to the value, clamped to [0, max].
func (m *Meter) ChangeStress(delta float64) {
	if m == nil || math.IsNaN(delta) {
		return
	}
	m.value = common.Clamp(m.value+delta, 0, m.max)
}

// CueInterval is the number of seconds between audio cues at the given value.
func CueInterval(value float64) float64 {
	return 10.0 / ((1 + value) * 0.1)
}

func (m *Meter) Value() float64 {
	if m == nil {
		return 0
	}
	return m.value
}

func (m *Meter) Max() float64 {
	if m == nil {
		return 0
	}
	return m.max
}

func (m *Meter) State() State {
	if m == nil {
		return Idle
	}
	return m.state
}

func (m *Meter) Variant() Variant {
	if m == nil {
		return Base
	}
	return m.variant
}

func (m *Meter) CueName() string {
	if m == nil {
		return ""
	}
	return m.cueName
}

// Percent is the fill fraction in [0, 1].
func (m *Meter) Percent() float64 {
	if m == nil {
		return 0
	}
	return m.value / m.max
}

// Bounds returns the top-left corner and size of the bar.
func (m *Meter) Bounds() (x, y, width, height float64) {
	if m == nil {
		return 0, 0, 0, 0
	}
	return m.x, m.y, m.width, m.height
}
