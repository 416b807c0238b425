package xr

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"arscene/internal/glyph5x7"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// ButtonState is the state of an AR entry button.
type ButtonState uint8

const (
	ButtonUnavailable ButtonState = iota // no System at all
	ButtonUnsupported                    // System present, immersive-ar not supported
	ButtonIdle
	ButtonPending
	ButtonActive
)

func (s ButtonState) Label() string {
	switch s {
	case ButtonUnavailable:
		return "XR NOT AVAILABLE"
	case ButtonUnsupported:
		return "AR NOT SUPPORTED"
	case ButtonPending:
		return "STARTING AR"
	case ButtonActive:
		return "AR ACTIVE"
	default:
		return "START AR"
	}
}

const (
	buttonPadX   = 12
	buttonPadY   = 6
	buttonBottom = 20
	buttonScale  = 2 // font pixels per CSS pixel
)

var (
	buttonFill   = color.RGBA{A: 0x1A}
	buttonStroke = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}
)

// Button is the user-facing entry point into an immersive-ar session.
// Sessions require a user gesture, so Click is the only way to request one.
type Button struct {
	m    *Manager
	sys  System
	init SessionInit
	log  logrus.FieldLogger

	state ButtonState
	viewW int
	viewH int
	rect  image.Rectangle
}

// NewARButton probes sys for immersive-ar support and returns a button in
// the matching state. sys may be nil when the host has no XR at all.
func NewARButton(m *Manager, sys System, init SessionInit, log logrus.FieldLogger) *Button {
	if log == nil {
		log = m.log
	}
	b := &Button{m: m, sys: sys, init: init, log: log}
	switch {
	case sys == nil:
		b.state = ButtonUnavailable
	default:
		ok, err := sys.IsSessionSupported(ImmersiveAR)
		if err != nil {
			log.WithError(err).Warn("xr support probe failed")
		}
		if ok && err == nil {
			b.state = ButtonIdle
		} else {
			b.state = ButtonUnsupported
		}
	}
	return b
}

// State returns the current state.
func (b *Button) State() ButtonState { return b.state }

// Label returns the current caption.
func (b *Button) Label() string { return b.state.Label() }

// Layout centers the button near the bottom of a viewport of w x h CSS
// pixels.
func (b *Button) Layout(w, h int) {
	b.viewW, b.viewH = w, h
	b.relayout()
}

func (b *Button) relayout() {
	_, tw := tinyfont.LineWidth(glyph5x7.Font, b.Label())
	w := int(tw)*buttonScale + 2*buttonPadX
	h := glyph5x7.Height*buttonScale + 2*buttonPadY
	x := (b.viewW - w) / 2
	y := b.viewH - buttonBottom - h
	b.rect = image.Rect(x, y, x+w, y+h)
}

func (b *Button) setState(s ButtonState) {
	b.state = s
	b.relayout()
}

func (b *Button) Bounds() image.Rectangle { return b.rect }

// Click handles a user gesture. Only an idle button does anything: it asks
// the System for an immersive-ar session with the button's options set.
func (b *Button) Click() {
	if b.state != ButtonIdle {
		return
	}
	b.setState(ButtonPending)
	b.log.WithField("mode", ImmersiveAR).Info("xr session requested")
	b.sys.RequestSession(ImmersiveAR, b.init, b.onSession)
}

func (b *Button) onSession(s *Session, err error) {
	if err != nil {
		b.log.WithError(err).Warn("xr session request failed")
		b.setState(ButtonIdle)
		return
	}
	b.m.SetReferenceSpaceType(ReferenceSpaceLocal)
	if err := b.m.SetSession(s); err != nil {
		b.log.WithError(err).Warn("xr session rejected by renderer")
		s.End()
		b.setState(ButtonIdle)
		return
	}
	b.setState(ButtonActive)
	s.OnEnd(func(*Session) { b.setState(ButtonIdle) })
}

func (b *Button) Paint(dst draw.Image, ratio float64) {
	if b.rect.Empty() {
		return
	}
	pr := scaleRect(b.rect, ratio)
	draw.Draw(dst, pr, image.NewUniform(buttonFill), image.Point{}, draw.Over)
	strokeRect(dst, pr, buttonStroke)

	scale := int(math.Round(buttonScale * ratio))
	if scale < 1 {
		scale = 1
	}
	d := &scaledDisplay{
		dst:   dst,
		ox:    pr.Min.X + int(math.Round(buttonPadX*ratio)),
		oy:    pr.Min.Y + int(math.Round(buttonPadY*ratio)),
		scale: scale,
	}
	tinyfont.WriteLine(d, glyph5x7.Font, 0, glyph5x7.Height-1, b.Label(), buttonStroke)
}

func scaleRect(r image.Rectangle, ratio float64) image.Rectangle {
	f := func(v int) int { return int(math.Round(float64(v) * ratio)) }
	return image.Rect(f(r.Min.X), f(r.Min.Y), f(r.Max.X), f(r.Max.Y))
}

func strokeRect(dst draw.Image, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, c)
		dst.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, c)
		dst.Set(r.Max.X-1, y, c)
	}
}

// scaledDisplay lets tinyfont draw into a draw.Image, each font pixel
// becoming a scale x scale block at offset (ox, oy).
type scaledDisplay struct {
	dst    draw.Image
	ox, oy int
	scale  int
}

var _ drivers.Displayer = (*scaledDisplay)(nil)

func (d *scaledDisplay) Size() (x, y int16) {
	b := d.dst.Bounds()
	return int16(b.Dx() / d.scale), int16(b.Dy() / d.scale)
}

func (d *scaledDisplay) SetPixel(x, y int16, c color.RGBA) {
	px := d.ox + int(x)*d.scale
	py := d.oy + int(y)*d.scale
	for dy := 0; dy < d.scale; dy++ {
		for dx := 0; dx < d.scale; dx++ {
			d.dst.Set(px+dx, py+dy, c)
		}
	}
}

func (d *scaledDisplay) Display() error { return nil }
