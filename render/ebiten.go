package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace is the built-in 7x13 bitmap font, so HUD text needs no font assets.
var DefaultFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// EbitenSurface draws onto an ebiten image.
type EbitenSurface struct {
	dst       *ebiten.Image
	face      ebtext.Face
	antiAlias bool
}

func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{dst: dst, face: DefaultFace}
}

// WithAntiAlias smooths rect edges, which matters once the window is scaled.
func (s *EbitenSurface) WithAntiAlias(on bool) *EbitenSurface {
	s.antiAlias = on
	return s
}

func (s *EbitenSurface) FillRect(x, y, width, height float64, c color.Color) {
	vector.FillRect(s.dst, float32(x), float32(y), float32(width), float32(height), c, s.antiAlias)
}

func (s *EbitenSurface) StrokeRect(x, y, width, height, thickness float64, c color.Color) {
	vector.StrokeRect(s.dst, float32(x), float32(y), float32(width), float32(height), float32(thickness), c, s.antiAlias)
}

func (s *EbitenSurface) DrawText(str string, x, y float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(s.dst, str, s.face, op)
}

func (s *EbitenSurface) MeasureText(str string) (float64, float64) {
	return ebtext.Measure(str, s.face, 0)
}
