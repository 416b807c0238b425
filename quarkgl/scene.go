package quarkgl

import "github.com/go-gl/mathgl/mgl32"

// Kind tells entity types apart without a type switch.
type Kind uint8

const (
	KindMesh Kind = iota + 1
	KindLight
	KindCamera
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	case KindCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// Entity is anything a Scene can hold.
type Entity interface {
	Kind() Kind
	Position() mgl32.Vec3
}

// Object carries the world position shared by all entities.
type Object struct {
	position mgl32.Vec3
}

func (o *Object) Position() mgl32.Vec3 { return o.position }

// SetPosition moves the object in world space (meters, +y up, +z toward
// the viewer at the session origin).
func (o *Object) SetPosition(x, y, z float32) {
	o.position = mgl32.Vec3{x, y, z}
}

// Matrix returns the object's translation transform.
func (o *Object) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.position[0], o.position[1], o.position[2])
}

// Mesh pairs a geometry with a material. Both are held by pointer so
// several meshes can share one descriptor.
type Mesh struct {
	Object

	Geometry *Geometry
	Material *MeshPhongMaterial
}

// NewMesh creates a mesh at the origin.
func NewMesh(g *Geometry, m *MeshPhongMaterial) *Mesh {
	return &Mesh{Geometry: g, Material: m}
}

func (m *Mesh) Kind() Kind { return KindMesh }

// Scene is an unordered collection of entities. Only entities added to it
// are drawn.
type Scene struct {
	entities []Entity
}

// NewScene allocates an empty scene.
func NewScene() *Scene { return &Scene{} }

// Add appends entities. nil entries and entities already present are
// ignored, so an entity is held at most once.
func (s *Scene) Add(es ...Entity) {
	for _, e := range es {
		if e == nil || s.Contains(e) {
			continue
		}
		s.entities = append(s.entities, e)
	}
}

// Contains reports whether e was added.
func (s *Scene) Contains(e Entity) bool {
	for _, have := range s.entities {
		if have == e {
			return true
		}
	}
	return false
}

// Len returns the number of entities.
func (s *Scene) Len() int { return len(s.entities) }

// Entities returns a copy of the entity list.
func (s *Scene) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Count returns the number of entities of kind k.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, e := range s.entities {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

// Meshes returns the meshes in insertion order.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	for _, e := range s.entities {
		if m, ok := e.(*Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

// AmbientLights returns the ambient lights in insertion order.
func (s *Scene) AmbientLights() []*AmbientLight {
	var out []*AmbientLight
	for _, e := range s.entities {
		if l, ok := e.(*AmbientLight); ok {
			out = append(out, l)
		}
	}
	return out
}

// ambient sums every ambient light.
func (s *Scene) ambient() linear {
	var sum linear
	for _, l := range s.AmbientLights() {
		sum = sum.add(l.Color.linear().scale(l.Intensity))
	}
	return sum
}
