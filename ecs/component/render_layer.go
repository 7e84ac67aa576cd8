package component

// RenderLayer orders HUD widgets. Lower indices draw first.
type RenderLayer struct {
	Index int
}

// Order is the draw order of l; a missing layer draws at 0.
func (l *RenderLayer) Order() int {
	if l == nil {
		return 0
	}
	return l.Index
}

var RenderLayerComponent = NewComponent[RenderLayer]()
