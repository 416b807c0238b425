package quarkgl

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
}

// Geometry is an immutable indexed triangle list. Front faces wind
// counter-clockwise when seen from outside.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16 // triangle list

	// Size is the box extent for geometries made by NewBoxGeometry.
	Size mgl32.Vec3
}

// Triangles returns the number of triangles.
func (g *Geometry) Triangles() int { return len(g.Indices) / 3 }

type boxFace struct {
	n, u, v mgl32.Vec3
}

// u x v == n for every face, so (-u-v, u-v, u+v, -u+v) is counter-clockwise
// seen from outside.
var boxFaces = [6]boxFace{
	{n: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{n: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{n: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// NewBoxGeometry builds an axis-aligned box centered on the origin with
// 24 vertices (4 per face, flat normals) and 36 indices.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	scale := func(a mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{a[0] * half[0], a[1] * half[1], a[2] * half[2]}
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint16, 0, 36),
		Size:     mgl32.Vec3{width, height, depth},
	}
	for _, f := range boxFaces {
		c := scale(f.n)
		u := scale(f.u)
		v := scale(f.v)
		base := uint16(len(g.Vertices))
		g.Vertices = append(g.Vertices,
			Vertex{Pos: c.Sub(u).Sub(v), Normal: f.n},
			Vertex{Pos: c.Add(u).Sub(v), Normal: f.n},
			Vertex{Pos: c.Add(u).Add(v), Normal: f.n},
			Vertex{Pos: c.Sub(u).Add(v), Normal: f.n},
		)
		g.Indices = append(g.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return g
}
