package quarkgl

// AmbientLight lights every surface uniformly.
//
// It has a position like every Object, but ambient light is non-directional
// so the position never affects shading.
type AmbientLight struct {
	Object

	Color     Color
	Intensity float32
}

// NewAmbientLight creates a light of color c at full intensity.
func NewAmbientLight(c Color) *AmbientLight {
	return &AmbientLight{Color: c, Intensity: 1}
}

func (l *AmbientLight) Kind() Kind { return KindLight }
