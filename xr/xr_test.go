package xr

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fixedTracker struct {
	pose Pose
	ok   bool
}

func (t *fixedTracker) Sample(float64) (Pose, bool) { return t.pose, t.ok }

type recordingPoser struct {
	calls int
	pos   mgl32.Vec3
	rot   mgl32.Quat
}

func (p *recordingPoser) SetPose(pos mgl32.Vec3, rot mgl32.Quat) {
	p.calls++
	p.pos, p.rot = pos, rot
}

// fakeSystem holds requests until resolve is called, like a consent prompt.
type fakeSystem struct {
	supported bool
	probeErr  error
	deny      error
	requests  int
	pending   []func(*Session, error)
	tracker   Tracker
}

func (s *fakeSystem) IsSessionSupported(Mode) (bool, error) { return s.supported, s.probeErr }

func (s *fakeSystem) RequestSession(mode Mode, init SessionInit, done func(*Session, error)) {
	s.requests++
	s.pending = append(s.pending, func(*Session, error) {
		if s.deny != nil {
			done(nil, s.deny)
			return
		}
		done(NewSession(mode, init, s.tracker), nil)
	})
}

func (s *fakeSystem) resolve() {
	p := s.pending
	s.pending = nil
	for _, fn := range p {
		fn(nil, nil)
	}
}

func TestSessionEndRunsListenersOnce(t *testing.T) {
	s := NewSession(ImmersiveAR, SessionInit{}, nil)
	var order []int
	s.OnEnd(func(*Session) { order = append(order, 1) })
	s.OnEnd(func(*Session) { order = append(order, 2) })
	s.End()
	s.End()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("listener order = %v", order)
	}
	late := false
	s.OnEnd(func(*Session) { late = true })
	if !late {
		t.Fatal("listener registered after End did not run")
	}
	if s.Frame(1) != nil {
		t.Fatal("ended session produced a frame")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewSession(ImmersiveAR, SessionInit{}, nil)
	b := NewSession(ImmersiveAR, SessionInit{}, nil)
	if a.ID() == b.ID() {
		t.Fatalf("duplicate session id %d", a.ID())
	}
}

func TestManagerRequiresEnabled(t *testing.T) {
	m := NewManager(nil)
	err := m.SetSession(NewSession(ImmersiveAR, SessionInit{}, nil))
	if !errors.Is(err, ErrNotEnabled) {
		t.Fatalf("SetSession on disabled manager: %v", err)
	}
}

func TestManagerRejectsSecondSession(t *testing.T) {
	m := NewManager(nil)
	m.Enabled = true
	if err := m.SetSession(NewSession(ImmersiveAR, SessionInit{}, nil)); err != nil {
		t.Fatalf("first SetSession: %v", err)
	}
	err := m.SetSession(NewSession(ImmersiveAR, SessionInit{}, nil))
	if !errors.Is(err, ErrSessionActive) {
		t.Fatalf("second SetSession: %v", err)
	}
}

func TestManagerNextFrameUpdatesPoseFirst(t *testing.T) {
	want := Pose{Position: mgl32.Vec3{0, 1.6, 0}, Orientation: mgl32.QuatRotate(0.3, mgl32.Vec3{0, 1, 0})}
	tr := &fixedTracker{pose: want}
	m := NewManager(nil)
	m.Enabled = true
	cam := &recordingPoser{}
	m.BindCamera(cam)
	m.BindCamera(cam)

	if m.NextFrame(0) != nil {
		t.Fatal("frame without a session")
	}

	s := NewSession(ImmersiveAR, SessionInit{}, tr)
	if err := m.SetSession(s); err != nil {
		t.Fatal(err)
	}

	if f := m.NextFrame(10); f != nil {
		t.Fatal("frame while tracking unavailable")
	}
	if cam.calls != 0 {
		t.Fatal("pose applied without a frame")
	}

	tr.ok = true
	f := m.NextFrame(20)
	if f == nil {
		t.Fatal("expected a frame")
	}
	if f.Time != 20 || f.Session != s {
		t.Fatalf("frame = %+v", f)
	}
	if cam.calls != 1 {
		t.Fatalf("poser calls = %d, want 1", cam.calls)
	}
	if !cam.pos.ApproxEqual(want.Position) || !cam.rot.ApproxEqual(want.Orientation) {
		t.Fatalf("pose = %v %v", cam.pos, cam.rot)
	}

	s.End()
	if m.IsPresenting() || m.Session() != nil {
		t.Fatal("manager still presenting after session end")
	}
	if m.NextFrame(30) != nil {
		t.Fatal("frame after session end")
	}
}

func TestPoseMatrix(t *testing.T) {
	p := Pose{Position: mgl32.Vec3{1, 2, 3}, Orientation: mgl32.QuatIdent()}
	got := p.Matrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !got.ApproxEqual(p.Position) {
		t.Fatalf("origin maps to %v", got)
	}
}

func TestButtonStates(t *testing.T) {
	m := NewManager(nil)
	if b := NewARButton(m, nil, SessionInit{}, nil); b.State() != ButtonUnavailable {
		t.Fatalf("nil system state = %v", b.State())
	}
	if b := NewARButton(m, &fakeSystem{}, SessionInit{}, nil); b.State() != ButtonUnsupported {
		t.Fatalf("unsupported state = %v", b.State())
	}
	probe := &fakeSystem{supported: true, probeErr: errors.New("boom")}
	if b := NewARButton(m, probe, SessionInit{}, nil); b.State() != ButtonUnsupported {
		t.Fatalf("probe error state = %v", b.State())
	}
}

func TestButtonUnsupportedClickDoesNothing(t *testing.T) {
	sys := &fakeSystem{}
	b := NewARButton(NewManager(nil), sys, SessionInit{}, nil)
	b.Click()
	if sys.requests != 0 {
		t.Fatal("unsupported button requested a session")
	}
}

func TestButtonStartsSession(t *testing.T) {
	m := NewManager(nil)
	m.Enabled = true
	sys := &fakeSystem{supported: true, tracker: &fixedTracker{ok: true, pose: IdentityPose()}}
	b := NewARButton(m, sys, SessionInit{}, nil)
	if b.Label() != "START AR" {
		t.Fatalf("label = %q", b.Label())
	}

	b.Click()
	if b.State() != ButtonPending || sys.requests != 1 {
		t.Fatalf("after click: state=%v requests=%d", b.State(), sys.requests)
	}
	b.Click()
	if sys.requests != 1 {
		t.Fatal("pending button issued a second request")
	}

	sys.resolve()
	if b.State() != ButtonActive || !m.IsPresenting() {
		t.Fatalf("after grant: state=%v presenting=%v", b.State(), m.IsPresenting())
	}
	if m.ReferenceSpaceType() != ReferenceSpaceLocal {
		t.Fatalf("reference space = %q", m.ReferenceSpaceType())
	}

	b.Click()
	if sys.requests != 1 || !m.IsPresenting() {
		t.Fatal("active button reacted to a click")
	}

	m.Session().End()
	if b.State() != ButtonIdle {
		t.Fatalf("after end: state=%v", b.State())
	}
}

func TestButtonDeniedReturnsToIdle(t *testing.T) {
	m := NewManager(nil)
	m.Enabled = true
	sys := &fakeSystem{supported: true, deny: ErrDenied}
	b := NewARButton(m, sys, SessionInit{}, nil)
	b.Click()
	sys.resolve()
	if b.State() != ButtonIdle || m.IsPresenting() {
		t.Fatalf("after denial: state=%v presenting=%v", b.State(), m.IsPresenting())
	}
	b.Click()
	if sys.requests != 2 {
		t.Fatalf("requests = %d, want a fresh request after denial", sys.requests)
	}
}

func TestButtonEndsSessionRendererRefuses(t *testing.T) {
	m := NewManager(nil) // not enabled
	sys := &fakeSystem{supported: true}
	b := NewARButton(m, sys, SessionInit{}, nil)
	b.Click()

	granted := NewSession(ImmersiveAR, SessionInit{}, nil)
	b.onSession(granted, nil)
	if !granted.Ended() {
		t.Fatal("session refused by the renderer was left running")
	}
	if b.State() != ButtonIdle {
		t.Fatalf("state = %v", b.State())
	}
}

func TestButtonLayoutAndPaint(t *testing.T) {
	m := NewManager(nil)
	b := NewARButton(m, &fakeSystem{supported: true}, SessionInit{}, nil)
	b.Layout(800, 600)
	r := b.Bounds()
	if r.Empty() {
		t.Fatal("empty bounds after layout")
	}
	if mid := (r.Min.X + r.Max.X) / 2; mid < 398 || mid > 402 {
		t.Fatalf("button not centered: %v", r)
	}
	if r.Max.Y != 600-buttonBottom {
		t.Fatalf("button bottom = %d", r.Max.Y)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
	b.Paint(dst, 1)
	if c := dst.RGBAAt(r.Min.X, r.Min.Y); c.A == 0 {
		t.Fatal("border not painted")
	}
	if c := dst.RGBAAt(0, 0); c.A != 0 {
		t.Fatal("paint leaked outside the button")
	}
}
