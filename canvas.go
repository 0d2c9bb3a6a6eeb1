package flatpaint

// Canvas adapts a Layer to renderers that report filled regions with
// their own transform and clip, such as the svg package.
type Canvas struct {
	layer *Layer
}

// NewCanvas returns a canvas drawing into l.
func NewCanvas(l *Layer) *Canvas {
	return &Canvas{layer: l}
}

// Layer returns the scope the canvas draws into.
func (c *Canvas) Layer() *Layer {
	return c.layer
}

// Fill paints path with paint as art. Path and paint are in user space,
// transform maps user space to the canvas space and clip, when not nil,
// is given in canvas space.
func (c *Canvas) Fill(path *Path, paint Paint, transform Matrix, clip *Path) error {
	l := c.layer
	if clip != nil {
		l = l.Clip(clip)
	}
	return l.Transform(transform).FillArt(path, paint)
}
