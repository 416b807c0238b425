// Package emulator is a simulated AR runtime for desktop and headless runs.
//
// It answers session requests after a configurable consent delay, produces a
// gently swaying head pose, and can simulate tracking loss and sessions
// ended by the platform.
package emulator

import (
	"fmt"
	"math"

	"arscene/internal/logger"
	"arscene/xr"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Config describes the simulated device.
type Config struct {
	Supported         bool    `yaml:"supported"`
	Deny              bool    `yaml:"deny"`
	ConsentDelayTicks int     `yaml:"consent_delay_ticks"`
	WarmupMs          float64 `yaml:"warmup_ms"`
	LossEveryMs       float64 `yaml:"loss_every_ms"`
	LossForMs         float64 `yaml:"loss_for_ms"`
	SessionLimitMs    float64 `yaml:"session_limit_ms"`
}

// DefaultConfig is a supported device that shows its consent prompt for one
// tick before granting.
func DefaultConfig() Config {
	return Config{
		Supported:         true,
		ConsentDelayTicks: 1,
		WarmupMs:          100,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.ConsentDelayTicks < 0:
		return fmt.Errorf("emulator: consent_delay_ticks must be >= 0, got %d", c.ConsentDelayTicks)
	case c.WarmupMs < 0:
		return fmt.Errorf("emulator: warmup_ms must be >= 0, got %v", c.WarmupMs)
	case c.LossEveryMs < 0 || c.LossForMs < 0:
		return fmt.Errorf("emulator: loss window must be >= 0")
	case c.LossEveryMs > 0 && c.LossForMs >= c.LossEveryMs:
		return fmt.Errorf("emulator: loss_for_ms (%v) must be shorter than loss_every_ms (%v)", c.LossForMs, c.LossEveryMs)
	case c.SessionLimitMs < 0:
		return fmt.Errorf("emulator: session_limit_ms must be >= 0, got %v", c.SessionLimitMs)
	}
	return nil
}

type request struct {
	mode  xr.Mode
	init  xr.SessionInit
	done  func(*xr.Session, error)
	ticks int
}

// Emulator implements xr.System. It is driven by Advance from the host tick
// and is not safe for concurrent use.
type Emulator struct {
	cfg Config
	log logrus.FieldLogger

	now     float64
	pending []request

	session *xr.Session
	tracker *tracker
}

// New creates an emulator. A nil log discards messages.
func New(cfg Config, log logrus.FieldLogger) *Emulator {
	if log == nil {
		log = logger.Discard()
	}
	return &Emulator{cfg: cfg, log: log.WithField("component", "xr-emulator")}
}

// Config returns the device description.
func (e *Emulator) Config() Config { return e.cfg }

// IsSessionSupported implements xr.System. Only immersive-ar is emulated.
func (e *Emulator) IsSessionSupported(mode xr.Mode) (bool, error) {
	return e.cfg.Supported && mode == xr.ImmersiveAR, nil
}

// RequestSession implements xr.System. done runs from a later Advance.
func (e *Emulator) RequestSession(mode xr.Mode, init xr.SessionInit, done func(*xr.Session, error)) {
	if done == nil {
		return
	}
	e.log.WithField("mode", mode).Info("session requested")
	e.pending = append(e.pending, request{mode: mode, init: init, done: done})
}

// Pending returns the number of unresolved requests.
func (e *Emulator) Pending() int { return len(e.pending) }

// Session returns the session granted last, or nil once it ended.
func (e *Emulator) Session() *xr.Session { return e.session }

// Advance moves the emulator to ts (milliseconds). It resolves requests whose
// consent delay elapsed and ends a session that reached its time limit.
func (e *Emulator) Advance(ts float64) {
	e.now = ts

	var keep []request
	var ready []request
	for _, r := range e.pending {
		if r.ticks >= e.cfg.ConsentDelayTicks {
			ready = append(ready, r)
			continue
		}
		r.ticks++
		keep = append(keep, r)
	}
	e.pending = keep
	for _, r := range ready {
		e.resolve(r)
	}

	if s := e.session; s != nil && e.cfg.SessionLimitMs > 0 && ts-e.tracker.start >= e.cfg.SessionLimitMs {
		e.log.WithField("session", s.ID()).Info("session limit reached")
		s.End()
	}
}

func (e *Emulator) resolve(r request) {
	switch {
	case !e.cfg.Supported || r.mode != xr.ImmersiveAR:
		r.done(nil, fmt.Errorf("emulator: %s: %w", r.mode, xr.ErrNotSupported))
		return
	case e.cfg.Deny:
		r.done(nil, fmt.Errorf("emulator: consent declined: %w", xr.ErrDenied))
		return
	case e.session != nil:
		r.done(nil, xr.ErrSessionActive)
		return
	}

	t := &tracker{cfg: e.cfg, start: e.now}
	s := xr.NewSession(r.mode, r.init, t)
	e.session = s
	e.tracker = t
	s.OnEnd(func(ended *xr.Session) {
		if e.session == ended {
			e.session = nil
			e.tracker = nil
		}
	})
	e.log.WithField("session", s.ID()).Info("session granted")
	r.done(s, nil)
}

// tracker produces the emulated head pose.
type tracker struct {
	cfg   Config
	start float64
}

func (t *tracker) Sample(ts float64) (xr.Pose, bool) {
	dt := ts - t.start
	if dt < t.cfg.WarmupMs {
		return xr.Pose{}, false
	}
	if t.cfg.LossEveryMs > 0 && t.cfg.LossForMs > 0 {
		if math.Mod(dt-t.cfg.WarmupMs, t.cfg.LossEveryMs) >= t.cfg.LossEveryMs-t.cfg.LossForMs {
			return xr.Pose{}, false
		}
	}
	return SwayPose(dt), true
}

// SwayPose is the emulated viewer pose t milliseconds into a session: a
// head slowly looking around its starting point, which is the origin of the
// local reference space.
func SwayPose(t float64) xr.Pose {
	sec := t / 1000
	yaw := float32(0.08 * math.Sin(sec*2*math.Pi/6))
	pitch := float32(0.04 * math.Sin(sec*2*math.Pi/4))
	bob := float32(0.01 * math.Sin(sec*2*math.Pi/1.1))
	return xr.Pose{
		Position:    mgl32.Vec3{0, bob, 0},
		Orientation: mgl32.AnglesToQuat(yaw, pitch, 0, mgl32.YXZ).Normalize(),
	}
}
