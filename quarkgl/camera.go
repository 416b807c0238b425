package quarkgl

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera is a pinhole camera looking down its local -Z axis.
//
// Inside an immersive session the viewer pose overrides Position and
// Quaternion every frame through SetPose. The values set by the
// application are only a fallback.
type PerspectiveCamera struct {
	Object

	FOV    float32 // vertical, degrees
	Aspect float32 // width / height
	Near   float32
	Far    float32

	Quaternion mgl32.Quat
}

// NewPerspectiveCamera creates a camera at the origin with identity
// orientation.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:        fov,
		Aspect:     aspect,
		Near:       near,
		Far:        far,
		Quaternion: mgl32.QuatIdent(),
	}
}

func (c *PerspectiveCamera) Kind() Kind { return KindCamera }

// SetPose moves the camera to a tracked viewer pose.
func (c *PerspectiveCamera) SetPose(position mgl32.Vec3, orientation mgl32.Quat) {
	c.position = position
	c.Quaternion = orientation
}

// ProjectionMatrix returns the OpenGL-style clip transform.
func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewMatrix returns the inverse of the camera's world transform.
func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	q := c.Quaternion
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}
	p := c.position
	return q.Normalize().Conjugate().Mat4().Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}

// Forward returns the world-space viewing direction.
func (c *PerspectiveCamera) Forward() mgl32.Vec3 {
	q := c.Quaternion
	if q.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return q.Normalize().Rotate(mgl32.Vec3{0, 0, -1})
}
