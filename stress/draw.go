package stress

import (
	"fmt"
	"image/color"
	"math"
)

// labelLift is how far above the bar the label sits, in label heights.
const labelLift = 1.5

// Surface is the drawing target a meter renders onto.
type Surface interface {
	FillRect(x, y, width, height float64, c color.Color)
	StrokeRect(x, y, width, height, thickness float64, c color.Color)
	DrawText(s string, x, y float64, c color.Color)
	MeasureText(s string) (width, height float64)
}

// FilledHeight is the height of the coloured region.
func (m *Meter) FilledHeight() float64 {
	if m == nil {
		return 0
	}
	return m.value / m.max * m.height
}

// Label is the percentage text shown above an elaborated meter. Halves round
// to even, so 42.5 shows as 42%.
func (m *Meter) Label() string {
	return fmt.Sprintf("%d%%", int(math.RoundToEven(m.Value())))
}

// Draw renders the meter. It does not change any meter state.
func (m *Meter) Draw(s Surface) {
	if m == nil || s == nil {
		return
	}

	filled := m.FilledHeight()
	if filled > 0 {
		s.FillRect(m.x, m.y+m.height-filled, m.width, filled, m.fillColor)
	}
	s.StrokeRect(m.x, m.y, m.width, m.height, m.borderWidth, m.borderColor)

	if m.variant != Elaborated {
		return
	}

	label := m.Label()
	tw, th := s.MeasureText(label)
	s.DrawText(label, m.x+(m.width-tw)/2, m.y-th*labelLift, m.borderColor)
}
