package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TermSurface draws onto a tcell screen. One layout unit is one cell; stroke
// thickness is always a single box-drawing cell.
type TermSurface struct {
	screen tcell.Screen
	base   tcell.Style
}

func NewTermSurface(screen tcell.Screen) *TermSurface {
	return &TermSurface{screen: screen, base: tcell.StyleDefault}
}

func (s *TermSurface) FillRect(x, y, width, height float64, c color.Color) {
	x0, y0 := cell(x), cell(y)
	x1, y1 := cell(x+width), cell(y+height)
	style := s.base.Background(termColor(c))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

func (s *TermSurface) StrokeRect(x, y, width, height, _ float64, c color.Color) {
	x0, y0 := cell(x), cell(y)
	x1, y1 := cell(x+width)-1, cell(y+height)-1
	if x1 <= x0 || y1 <= y0 {
		return
	}
	style := s.base.Foreground(termColor(c))

	for cx := x0 + 1; cx < x1; cx++ {
		s.screen.SetContent(cx, y0, tcell.RuneHLine, nil, style)
		s.screen.SetContent(cx, y1, tcell.RuneHLine, nil, style)
	}
	for cy := y0 + 1; cy < y1; cy++ {
		s.screen.SetContent(x0, cy, tcell.RuneVLine, nil, style)
		s.screen.SetContent(x1, cy, tcell.RuneVLine, nil, style)
	}
	s.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	s.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	s.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	s.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

func (s *TermSurface) DrawText(str string, x, y float64, c color.Color) {
	cx, cy := cell(x), cell(y)
	style := s.base.Foreground(termColor(c))
	for _, r := range str {
		s.screen.SetContent(cx, cy, r, nil, style)
		cx += runewidth.RuneWidth(r)
	}
}

func (s *TermSurface) MeasureText(str string) (float64, float64) {
	return float64(runewidth.StringWidth(str)), 1
}

func cell(v float64) int {
	return int(math.Round(v))
}

func termColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
