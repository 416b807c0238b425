package app

import (
	"arscene/dom"
	"arscene/hal"
)

// New builds the application on h and returns the per-tick step.
//
// If construction panics, the step returns nil once so the host composes
// the panic screen, then reports the panic on every later call.
func New(h hal.HAL) func() error {
	c, err := newContext(h)
	if err != nil {
		shown := false
		return func() error {
			if !shown {
				shown = true
				return nil
			}
			return err
		}
	}
	return func() error {
		c.Renderer.Tick(h.Time().Now())
		return nil
	}
}

func newContext(h hal.HAL) (c *Context, err error) {
	defer recoverPanic(h, &err)

	log := h.Logger().WithField("component", "app")
	d := h.Display()

	c = &Context{
		Container: dom.NewContainer(),
		Stage:     BuildScene(d.InnerWidth(), d.InnerHeight()),
	}
	d.Document().Body().Append(c.Container)

	loop := NewFrameLoop(c.Stage, nil)
	c.Controller = NewSessionController(c, d, h.XR(), loop, log)
	loop.Drawer = c.Renderer
	return c, nil
}
