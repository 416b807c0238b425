// Package xr models immersive session negotiation: the host System that
// grants sessions, the Session handle it returns, the per-tick tracking
// Frame, and the Manager a renderer uses to present through a session.
package xr

import (
	"errors"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNotSupported  = errors.New("xr: session mode not supported")
	ErrDenied        = errors.New("xr: session request denied")
	ErrSessionActive = errors.New("xr: a session is already active")
	ErrNotEnabled    = errors.New("xr: manager not enabled")
	ErrEnded         = errors.New("xr: session already ended")
)

// Mode selects the kind of session.
type Mode string

const (
	ImmersiveAR Mode = "immersive-ar"
	ImmersiveVR Mode = "immersive-vr"
	Inline      Mode = "inline"
)

// ReferenceSpaceType selects the origin poses are reported against.
type ReferenceSpaceType string

const (
	ReferenceSpaceViewer     ReferenceSpaceType = "viewer"
	ReferenceSpaceLocal      ReferenceSpaceType = "local"
	ReferenceSpaceLocalFloor ReferenceSpaceType = "local-floor"
)

// SessionInit is the options set passed with a session request.
// The zero value asks for nothing beyond the mode itself.
type SessionInit struct {
	RequiredFeatures []string
	OptionalFeatures []string
}

// Pose is a rigid transform relative to the session origin.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// IdentityPose is the session origin.
func IdentityPose() Pose {
	return Pose{Orientation: mgl32.QuatIdent()}
}

// Matrix returns the pose as a world transform.
func (p Pose) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	return t.Mul4(p.Orientation.Normalize().Mat4())
}

// Tracker produces viewer poses for a session. It is implemented by the
// runtime that granted the session.
type Tracker interface {
	// Sample returns the viewer pose at timestamp ts (milliseconds).
	// ok is false while tracking is unavailable.
	Sample(ts float64) (pose Pose, ok bool)
}

var sessionSeq atomic.Uint64

// Session is an opaque handle to a granted immersive context. It is valid
// until End is called by the runtime or the host.
type Session struct {
	id      uint64
	mode    Mode
	init    SessionInit
	tracker Tracker

	ended bool
	onEnd []func(*Session)
}

// NewSession is called by runtimes when they grant a request.
func NewSession(mode Mode, init SessionInit, t Tracker) *Session {
	return &Session{
		id:      sessionSeq.Add(1),
		mode:    mode,
		init:    init,
		tracker: t,
	}
}

func (s *Session) ID() uint64        { return s.id }
func (s *Session) Mode() Mode        { return s.mode }
func (s *Session) Init() SessionInit { return s.init }
func (s *Session) Ended() bool       { return s.ended }

// OnEnd registers fn to run once when the session ends. Listeners run in
// registration order.
func (s *Session) OnEnd(fn func(*Session)) {
	if fn == nil {
		return
	}
	if s.ended {
		fn(s)
		return
	}
	s.onEnd = append(s.onEnd, fn)
}

// End terminates the session. Subsequent calls do nothing.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true
	listeners := s.onEnd
	s.onEnd = nil
	for _, fn := range listeners {
		fn(s)
	}
}

// Frame samples the tracker at ts. It returns nil when the session has
// ended or no pose is available for this tick.
func (s *Session) Frame(ts float64) *Frame {
	if s.ended || s.tracker == nil {
		return nil
	}
	pose, ok := s.tracker.Sample(ts)
	if !ok {
		return nil
	}
	return &Frame{Session: s, Time: ts, Pose: pose}
}

// Frame is the per-tick tracking handle. A nil *Frame means no valid pose
// was available for that tick.
type Frame struct {
	Session *Session
	Time    float64
	Pose    Pose
}

// FrameConsumer receives one call per display refresh tick.
type FrameConsumer interface {
	OnFrame(timestamp float64, frame *Frame)
}

// FrameConsumerFunc adapts a function to FrameConsumer.
type FrameConsumerFunc func(timestamp float64, frame *Frame)

func (f FrameConsumerFunc) OnFrame(timestamp float64, frame *Frame) { f(timestamp, frame) }

// System is the host side of session negotiation.
type System interface {
	// IsSessionSupported reports whether mode can be requested at all.
	IsSessionSupported(mode Mode) (bool, error)

	// RequestSession asks the host for a session. done is called exactly
	// once on the host thread, possibly during a later tick, with either a
	// live session or an error.
	RequestSession(mode Mode, init SessionInit, done func(*Session, error))
}
