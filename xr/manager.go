package xr

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Poser is anything whose transform follows the viewer pose.
type Poser interface {
	SetPose(position mgl32.Vec3, orientation mgl32.Quat)
}

// Manager binds a renderer to a session. While a session is presenting,
// NextFrame samples it and moves every bound Poser to the viewer pose
// before the frame is handed out.
type Manager struct {
	// Enabled must be set before SetSession is accepted.
	Enabled bool

	refSpace ReferenceSpaceType
	session  *Session
	cameras  []Poser
	tracking bool

	log logrus.FieldLogger
}

// NewManager creates a disabled manager. A nil log discards output.
func NewManager(log logrus.FieldLogger) *Manager {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Manager{
		refSpace: ReferenceSpaceLocalFloor,
		log:      log,
	}
}

// SetLogger replaces the manager's logger.
func (m *Manager) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		m.log = log
	}
}

func (m *Manager) SetReferenceSpaceType(t ReferenceSpaceType) { m.refSpace = t }
func (m *Manager) ReferenceSpaceType() ReferenceSpaceType     { return m.refSpace }

// BindCamera adds p to the set of posers updated on each frame.
func (m *Manager) BindCamera(p Poser) {
	if p == nil {
		return
	}
	for _, c := range m.cameras {
		if c == p {
			return
		}
	}
	m.cameras = append(m.cameras, p)
}

// SetSession starts presenting through s. Passing nil detaches the current
// session without ending it.
func (m *Manager) SetSession(s *Session) error {
	if s == nil {
		m.session = nil
		m.tracking = false
		return nil
	}
	if !m.Enabled {
		return ErrNotEnabled
	}
	if m.IsPresenting() {
		return ErrSessionActive
	}
	if s.Ended() {
		return ErrEnded
	}
	m.session = s
	m.tracking = false
	s.OnEnd(m.sessionEnded)
	m.log.WithFields(logrus.Fields{
		"session":   s.ID(),
		"mode":      s.Mode(),
		"reference": m.refSpace,
	}).Info("xr session started")
	return nil
}

func (m *Manager) sessionEnded(s *Session) {
	if m.session != s {
		return
	}
	m.session = nil
	m.tracking = false
	m.log.WithField("session", s.ID()).Info("xr session ended")
}

// Session returns the presenting session or nil.
func (m *Manager) Session() *Session { return m.session }

// IsPresenting reports whether a live session is attached.
func (m *Manager) IsPresenting() bool {
	return m.session != nil && !m.session.Ended()
}

// NextFrame samples the presenting session at ts. It returns nil when
// nothing is presenting or the pose is unavailable.
func (m *Manager) NextFrame(ts float64) *Frame {
	if !m.Enabled || !m.IsPresenting() {
		return nil
	}
	f := m.session.Frame(ts)
	if (f != nil) != m.tracking {
		m.tracking = f != nil
		if m.tracking {
			m.log.WithField("ts", ts).Debug("xr tracking acquired")
		} else {
			m.log.WithField("ts", ts).Debug("xr tracking lost")
		}
	}
	if f == nil {
		return nil
	}
	for _, c := range m.cameras {
		c.SetPose(f.Pose.Position, f.Pose.Orientation)
	}
	return f
}
