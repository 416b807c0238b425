package quarkgl

// Side selects which faces of a mesh are drawn.
type Side uint8

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// MeshPhongMaterial is a minimal surface description. Only the ambient
// term is shaded; the scene has no directional lights.
type MeshPhongMaterial struct {
	Color Color

	// Opacity is 0..1. It only takes effect when Transparent is set.
	Opacity     float32
	Transparent bool

	Side Side
}

// NewMeshPhongMaterial creates an opaque, front-sided material.
func NewMeshPhongMaterial(c Color) *MeshPhongMaterial {
	return &MeshPhongMaterial{
		Color:   c,
		Opacity: 1,
		Side:    FrontSide,
	}
}

// alpha is the coverage the material writes.
func (m *MeshPhongMaterial) alpha() float32 {
	if !m.Transparent {
		return 1
	}
	return clampF32(m.Opacity, 0, 1)
}

func (m *MeshPhongMaterial) culls(front bool) bool {
	switch m.Side {
	case DoubleSide:
		return false
	case BackSide:
		return front
	default:
		return !front
	}
}
