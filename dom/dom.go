// Package dom is the host document surface: an ordered tree of elements that
// the host paints into its framebuffer and routes user gestures into.
//
// Coordinates are CSS pixels. Painting receives the device pixel ratio so
// elements can size themselves in physical pixels.
package dom

import (
	"image"
	"image/draw"
)

// Element is anything that can be mounted on the document.
type Element interface {
	// Bounds returns the element rectangle in CSS pixels.
	Bounds() image.Rectangle

	// Paint draws the element into dst. dst is in physical pixels.
	Paint(dst draw.Image, ratio float64)
}

// Clicker is an Element that reacts to a user gesture.
type Clicker interface {
	Element
	Click()
}

// Container is an Element holding ordered children.
// Later children paint over earlier ones.
type Container struct {
	children []Element
}

// NewContainer creates an empty container.
func NewContainer() *Container { return &Container{} }

// Append adds e as the last child. Appending an element that is already a
// child moves it to the end.
func (c *Container) Append(e Element) {
	if e == nil {
		return
	}
	c.Remove(e)
	c.children = append(c.children, e)
}

// Remove detaches e. It reports whether e was a child.
func (c *Container) Remove(e Element) bool {
	for i, ch := range c.children {
		if ch == e {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Children returns the children in document order.
func (c *Container) Children() []Element { return c.children }

// Len returns the number of direct children.
func (c *Container) Len() int { return len(c.children) }

// Bounds is the union of the children bounds.
func (c *Container) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, ch := range c.children {
		r = r.Union(ch.Bounds())
	}
	return r
}

func (c *Container) Paint(dst draw.Image, ratio float64) {
	for _, ch := range c.children {
		ch.Paint(dst, ratio)
	}
}

// Document is the root of the host surface.
type Document struct {
	body Container
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document { return &Document{} }

// Body returns the top-level container.
func (d *Document) Body() *Container { return &d.body }

// Paint draws the whole document into dst.
func (d *Document) Paint(dst draw.Image, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	d.body.Paint(dst, ratio)
}

// Click delivers a pointer gesture at (x, y) to the topmost Clicker under
// it. It reports whether any element took the gesture.
func (d *Document) Click(x, y int) bool {
	pt := image.Pt(x, y)
	c := hit(&d.body, pt)
	if c == nil {
		return false
	}
	c.Click()
	return true
}

// Activate delivers a keyboard gesture to the first Clicker in document
// order. It reports whether any element took the gesture.
func (d *Document) Activate() bool {
	c := first(&d.body)
	if c == nil {
		return false
	}
	c.Click()
	return true
}

// Find returns the first Clicker in document order, or nil.
func (d *Document) Find() Clicker { return first(&d.body) }

func hit(c *Container, pt image.Point) Clicker {
	for i := len(c.children) - 1; i >= 0; i-- {
		switch e := c.children[i].(type) {
		case *Container:
			if got := hit(e, pt); got != nil {
				return got
			}
		case Clicker:
			if pt.In(e.Bounds()) {
				return e
			}
		}
	}
	return nil
}

func first(c *Container) Clicker {
	for _, ch := range c.children {
		switch e := ch.(type) {
		case *Container:
			if got := first(e); got != nil {
				return got
			}
		case Clicker:
			return e
		}
	}
	return nil
}
