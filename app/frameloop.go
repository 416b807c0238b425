package app

import (
	"arscene/quarkgl"
	"arscene/xr"
)

// Drawer renders a scene through a camera.
type Drawer interface {
	Render(scene *quarkgl.Scene, camera *quarkgl.PerspectiveCamera)
}

// FrameLoop is the per-tick callback. It draws only on ticks that carry a
// tracking frame.
type FrameLoop struct {
	Scene  *quarkgl.Scene
	Camera *quarkgl.PerspectiveCamera
	Drawer Drawer
}

// NewFrameLoop creates a loop over the stage. d may be nil when the
// renderer that draws is created after the loop; until Drawer is set,
// OnFrame draws nothing even on tracked ticks.
func NewFrameLoop(s *Stage, d Drawer) *FrameLoop {
	return &FrameLoop{Scene: s.Scene, Camera: s.Camera, Drawer: d}
}

// OnFrame implements xr.FrameConsumer. Nothing is drawn when frame is nil,
// which means there is no pose for this tick, or when Drawer is unset.
func (l *FrameLoop) OnFrame(_ float64, frame *xr.Frame) {
	if frame == nil || l.Drawer == nil {
		return
	}
	l.Drawer.Render(l.Scene, l.Camera)
}
