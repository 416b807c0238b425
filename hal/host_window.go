//go:build cgo

package hal

import (
	"arscene/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window, paints the document into it every
// frame and routes mouse, touch and Enter to the document. Escape quits.
// It blocks until the window closes.
//
// A step error stops the application but keeps the window open on the last
// composed document. It is returned once the window closes.
func RunWindow(newApp func(HAL) func() error, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	ratio := opts.Window.Scale
	if ratio <= 0 {
		ratio = 1
		if m := ebiten.Monitor(); m != nil {
			ratio = m.DeviceScaleFactor()
		}
	}

	h := newHost(opts, ratio)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("arscene (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(opts.Window.Width, opts.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return g.err
}

type hostGame struct {
	h       *hostHAL
	in      hostInput
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	err     error
}

func (g *hostGame) Update() error {
	d := g.h.display
	if dispatch(d.doc, d.ratio, g.in.poll()) {
		return ebiten.Termination
	}
	if g.err != nil {
		return nil
	}
	if err := g.h.tick(g.h.t.elapsed(), g.step); err != nil {
		g.h.logger.WithError(err).Error("application stopped")
		g.err = err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.display.fb
	w, h := fb.Width(), fb.Height()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
		g.scratch = make([]byte, len(fb.Buffer()))
	}

	if err := g.h.compose(); err != nil {
		g.h.logger.WithError(err).Warn("present failed")
	}
	fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.h.display.fb
	return fb.Width(), fb.Height()
}
