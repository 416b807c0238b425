package quarkgl

import (
	"image"
	"image/draw"
)

// Canvas is the renderer's output surface as a document element. It sits at
// the top-left corner and covers the renderer size.
type Canvas struct {
	r   *Renderer
	img *image.RGBA
}

// Bounds returns the CSS rectangle of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	w, h := c.r.Size()
	return image.Rect(0, 0, w, h)
}

// Paint composites the last rendered frame over dst. The drawing buffer is
// already in physical pixels so ratio is unused.
func (c *Canvas) Paint(dst draw.Image, _ float64) {
	if c.img == nil {
		return
	}
	draw.Draw(dst, c.img.Bounds(), c.img, image.Point{}, draw.Over)
}

// Image returns the drawing buffer. It is reallocated by SetSize and
// SetPixelRatio.
func (c *Canvas) Image() *image.RGBA { return c.img }
