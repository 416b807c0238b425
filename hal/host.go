package hal

import (
	"fmt"

	"arscene/dom"
	"arscene/internal/logger"
	"arscene/xr"
	"arscene/xr/emulator"

	"github.com/sirupsen/logrus"
)

// WindowConfig sizes the host window in CSS pixels.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Scale is the device pixel ratio. 0 uses the monitor scale factor in
	// window mode and 1 in headless mode.
	Scale float64 `yaml:"scale"`
}

// Options are shared by both host runners.
type Options struct {
	Window   WindowConfig
	Emulator emulator.Config
	Log      logrus.FieldLogger
}

func (o Options) validate() error {
	if o.Window.Width <= 0 || o.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Window.Width, o.Window.Height)
	}
	if o.Window.Scale < 0 {
		return fmt.Errorf("invalid window scale %v", o.Window.Scale)
	}
	return o.Emulator.Validate()
}

type hostHAL struct {
	logger  *hostLogger
	display *hostDisplay
	t       *hostTime
	xr      *emulator.Emulator
}

func newHost(opts Options, ratio float64) *hostHAL {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	if ratio <= 0 {
		ratio = 1
	}
	w, h := opts.Window.Width, opts.Window.Height
	return &hostHAL{
		logger: &hostLogger{FieldLogger: log},
		display: &hostDisplay{
			width:  w,
			height: h,
			ratio:  ratio,
			doc:    dom.NewDocument(),
			fb:     newHostFramebuffer(physical(w, ratio), physical(h, ratio)),
		},
		t:  newHostTime(),
		xr: emulator.New(opts.Emulator, log),
	}
}

func physical(css int, ratio float64) int {
	return int(float64(css) * ratio)
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.display }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) XR() xr.System    { return h.xr }

// tick advances the clock and the emulated runtime, then runs step.
func (h *hostHAL) tick(now float64, step func() error) error {
	h.t.set(now)
	h.xr.Advance(now)
	if step == nil {
		return nil
	}
	return step()
}

// compose paints the document over the page backdrop and presents it.
func (h *hostHAL) compose() error {
	d := h.display
	d.fb.ClearRGB(backdropR, backdropG, backdropB)
	d.doc.Paint(d.fb.Image(), d.ratio)
	return d.fb.Present()
}

// Page backdrop behind the transparent canvas.
const (
	backdropR = 0x20
	backdropG = 0x24
	backdropB = 0x2A
)

type hostDisplay struct {
	width  int
	height int
	ratio  float64
	doc    *dom.Document
	fb     *hostFramebuffer
}

func (d *hostDisplay) InnerWidth() int          { return d.width }
func (d *hostDisplay) InnerHeight() int         { return d.height }
func (d *hostDisplay) PixelRatio() float64      { return d.ratio }
func (d *hostDisplay) Document() *dom.Document  { return d.doc }
func (d *hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	logrus.FieldLogger
}

func (l *hostLogger) WriteLineString(s string) { l.Info(s) }
func (l *hostLogger) WriteLineBytes(b []byte)  { l.Info(string(b)) }
