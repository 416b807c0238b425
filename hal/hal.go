package hal

import (
	"errors"
	"image"

	"arscene/dom"
	"arscene/xr"

	"github.com/sirupsen/logrus"
)

// Logger is a structured logger that also accepts raw lines.
type Logger interface {
	logrus.FieldLogger
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp premultiplied RGBA, the image.RGBA layout.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Image() *image.RGBA
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display is the host window: its CSS size, the device pixel ratio, the
// document mounted on it and the physical framebuffer it is painted into.
type Display interface {
	InnerWidth() int
	InnerHeight() int
	PixelRatio() float64
	Document() *dom.Document
	Framebuffer() Framebuffer
}

// Time provides the display refresh clock.
type Time interface {
	// Now returns a monotonic timestamp in milliseconds.
	Now() float64
}

// HAL provides the only contact point between the application and the
// outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
	XR() xr.System
}
