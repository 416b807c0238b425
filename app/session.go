package app

import (
	"arscene/dom"
	"arscene/internal/logger"
	"arscene/quarkgl"
	"arscene/xr"

	"github.com/sirupsen/logrus"
)

// Window is the part of the host display the session controller needs.
type Window interface {
	InnerWidth() int
	InnerHeight() int
	PixelRatio() float64
	Document() *dom.Document
}

// Context holds everything the application creates. It replaces
// package-level state so several instances can coexist in tests.
type Context struct {
	Container *dom.Container
	Stage     *Stage
	Renderer  *quarkgl.Renderer
	Button    *xr.Button

	Controller *SessionController
}

// SessionController owns the renderer and the AR entry button.
type SessionController struct {
	ctx *Context
	log logrus.FieldLogger
}

// NewSessionController creates the renderer, enables XR on it and mounts
// the AR button and the canvas. ctx.Stage must be set.
//
// A session is only requested when the user activates the button; there
// is no automatic start.
func NewSessionController(ctx *Context, win Window, sys xr.System, loop xr.FrameConsumer, log logrus.FieldLogger) *SessionController {
	if log == nil {
		log = logger.Discard()
	}
	r := quarkgl.NewRenderer(quarkgl.RendererOptions{
		Alpha:     true,
		Antialias: true,
		Log:       log,
	})
	r.SetPixelRatio(win.PixelRatio())
	r.SetSize(win.InnerWidth(), win.InnerHeight())
	r.XR.Enabled = true
	r.XR.BindCamera(ctx.Stage.Camera)

	b := xr.NewARButton(r.XR, sys, xr.SessionInit{}, log)
	b.Layout(win.InnerWidth(), win.InnerHeight())
	win.Document().Body().Append(b)
	ctx.Container.Append(r.Canvas())

	r.SetAnimationLoop(loop)

	ctx.Renderer = r
	ctx.Button = b
	log.WithFields(logrus.Fields{
		"width":  win.InnerWidth(),
		"height": win.InnerHeight(),
		"ratio":  win.PixelRatio(),
		"button": b.Label(),
	}).Info("renderer ready")
	return &SessionController{ctx: ctx, log: log}
}

// Presenting reports whether an AR session is live.
func (c *SessionController) Presenting() bool {
	return c.ctx.Renderer.XR.IsPresenting()
}

// End ends the presenting session, if any.
func (c *SessionController) End() {
	if s := c.ctx.Renderer.XR.Session(); s != nil {
		c.log.WithField("session", s.ID()).Info("ending xr session")
		s.End()
	}
}
