package quarkgl

import (
	"image"
	"math"
	"sort"

	"arscene/xr"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// RendererOptions configures a Renderer at creation time.
type RendererOptions struct {
	// Alpha clears the drawing buffer to transparent instead of ClearColor.
	Alpha bool

	// Antialias renders at 2x resolution per axis and box-filters down.
	Antialias bool

	// ClearColor is used when Alpha is false. Default is black.
	ClearColor Color

	// Log receives session lifecycle messages from the XR manager.
	Log logrus.FieldLogger
}

// Info holds renderer statistics.
type Info struct {
	// Frames counts Render calls since creation.
	Frames uint64

	// Triangles is the number of triangles rasterized by the last Render.
	Triangles int
}

// Renderer is a software renderer with a single drawing buffer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	// XR presents through an immersive session when enabled.
	XR *xr.Manager

	opts RendererOptions

	width  int // CSS pixels
	height int
	ratio  float64
	ss     int

	work   *target
	canvas *Canvas

	loop  xr.FrameConsumer
	info  Info
	draws []drawItem
}

type drawItem struct {
	mesh        *Mesh
	z           float32 // view space
	transparent bool
}

// NewRenderer creates a renderer with an empty drawing buffer. Call
// SetSize before the first Render.
func NewRenderer(opts RendererOptions) *Renderer {
	r := &Renderer{
		XR:    xr.NewManager(opts.Log),
		opts:  opts,
		ratio: 1,
		ss:    1,
	}
	if opts.Antialias {
		r.ss = 2
	}
	r.canvas = &Canvas{r: r}
	r.resize()
	return r
}

// Options returns the creation options.
func (r *Renderer) Options() RendererOptions { return r.opts }

// SetPixelRatio sets the device pixel ratio used to size the buffer.
func (r *Renderer) SetPixelRatio(v float64) {
	if v <= 0 || math.IsNaN(v) {
		v = 1
	}
	r.ratio = v
	r.resize()
}

func (r *Renderer) PixelRatio() float64 { return r.ratio }

// SetSize sets the output size in CSS pixels.
func (r *Renderer) SetSize(w, h int) {
	r.width, r.height = w, h
	r.resize()
}

// Size returns the output size in CSS pixels.
func (r *Renderer) Size() (w, h int) { return r.width, r.height }

// DrawingBufferSize returns the canvas size in physical pixels.
func (r *Renderer) DrawingBufferSize() (w, h int) {
	w = int(math.Floor(float64(r.width) * r.ratio))
	h = int(math.Floor(float64(r.height) * r.ratio))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func (r *Renderer) resize() {
	w, h := r.DrawingBufferSize()
	r.canvas.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.work = newTarget(w*r.ss, h*r.ss)
}

// Canvas returns the element holding the drawing buffer.
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Info returns a snapshot of the statistics.
func (r *Renderer) Info() Info { return r.info }

// SetAnimationLoop installs the per-tick consumer. nil stops the loop.
func (r *Renderer) SetAnimationLoop(c xr.FrameConsumer) { r.loop = c }

// Tick is called by the host once per display refresh with a monotonic
// timestamp in milliseconds. While a session is presenting, the bound
// cameras are posed before the consumer runs. Otherwise the consumer gets a
// nil frame.
func (r *Renderer) Tick(ts float64) {
	if r.loop == nil {
		return
	}
	var f *xr.Frame
	if r.XR.Enabled {
		f = r.XR.NextFrame(ts)
	}
	r.loop.OnFrame(ts, f)
}

// Render draws s through cam into the drawing buffer. It is a single
// synchronous pass.
func (r *Renderer) Render(s *Scene, cam *PerspectiveCamera) {
	if r == nil || s == nil || cam == nil {
		return
	}
	r.info.Frames++
	r.info.Triangles = 0

	if r.opts.Alpha {
		r.work.Clear([4]uint8{})
	} else {
		r.work.Clear(r.opts.ClearColor.linear().premul(1))
	}

	w, h := r.work.Size()
	if w <= 0 || h <= 0 {
		return
	}

	view := cam.ViewMatrix()
	vp := cam.ProjectionMatrix().Mul4(view)
	amb := s.ambient()

	r.draws = r.draws[:0]
	for _, m := range s.Meshes() {
		if m.Geometry == nil || m.Material == nil {
			continue
		}
		z := view.Mul4x1(m.Position().Vec4(1)).Z()
		r.draws = append(r.draws, drawItem{mesh: m, z: z, transparent: m.Material.Transparent})
	}
	// Opaque front to back, then transparent back to front.
	sort.SliceStable(r.draws, func(i, j int) bool {
		a, b := r.draws[i], r.draws[j]
		if a.transparent != b.transparent {
			return !a.transparent
		}
		if a.transparent {
			return a.z < b.z
		}
		return a.z > b.z
	})

	for _, d := range r.draws {
		r.info.Triangles += r.drawMesh(w, h, vp, d.mesh, amb)
	}

	r.work.resolveInto(r.canvas.img, r.ss)
}

func (r *Renderer) drawMesh(w, h int, vp mgl32.Mat4, m *Mesh, amb linear) int {
	g := m.Geometry
	mat := m.Material
	if len(g.Vertices) == 0 || len(g.Indices) < 3 {
		return 0
	}

	mvp := vp.Mul4(m.Matrix())
	px := mat.Color.linear().mul(amb).premul(mat.alpha())
	blend := mat.Transparent

	n := 0
	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		i2 := int(g.Indices[i+2])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) || i2 >= len(g.Vertices) {
			continue
		}

		ndc0, ok0 := clipToNDC(mvp.Mul4x1(g.Vertices[i0].Pos.Vec4(1)))
		ndc1, ok1 := clipToNDC(mvp.Mul4x1(g.Vertices[i1].Pos.Vec4(1)))
		ndc2, ok2 := clipToNDC(mvp.Mul4x1(g.Vertices[i2].Pos.Vec4(1)))
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		if outsideFrustum(ndc0, ndc1, ndc2) {
			continue
		}

		front := (ndc1.X-ndc0.X)*(ndc2.Y-ndc0.Y)-(ndc2.X-ndc0.X)*(ndc1.Y-ndc0.Y) > 0
		if mat.culls(front) {
			continue
		}

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)
		r.fillTriangle(w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, px, blend)
		n++
	}
	return n
}

type ndcPoint struct {
	X, Y, Z float32
}

// maxNDC bounds vertices close to the eye plane so screen math stays in
// int range.
const maxNDC = 64

// clipToNDC divides by w. Vertices behind the eye or in front of the near
// plane drop the whole triangle.
func clipToNDC(p mgl32.Vec4) (ndcPoint, bool) {
	w := p.W()
	if w <= 1e-6 {
		return ndcPoint{}, false
	}
	invW := 1 / w
	n := ndcPoint{X: p.X() * invW, Y: p.Y() * invW, Z: p.Z() * invW}
	if n.Z < -1 {
		return ndcPoint{}, false
	}
	if n.X < -maxNDC || n.X > maxNDC || n.Y < -maxNDC || n.Y > maxNDC {
		return ndcPoint{}, false
	}
	return n, true
}

func outsideFrustum(a, b, c ndcPoint) bool {
	switch {
	case a.X < -1 && b.X < -1 && c.X < -1:
		return true
	case a.X > 1 && b.X > 1 && c.X > 1:
		return true
	case a.Y < -1 && b.Y < -1 && c.Y < -1:
		return true
	case a.Y > 1 && b.Y > 1 && c.Y > 1:
		return true
	case a.Z > 1 && b.Z > 1 && c.Z > 1:
		return true
	}
	return false
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(math.Round(float64(sx))), int(math.Round(float64(sy)))
}

func (r *Renderer) fillTriangle(w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, px [4]uint8, blend bool) {
	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	if area < 0 {
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}

	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1.0 / float32(area)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			z := (float32(w0)*z0 + float32(w1)*z1 + float32(w2)*z2) * invArea
			if !r.work.depthTest(w, x, y, z) {
				continue
			}
			if blend {
				r.work.BlendPixel(x, y, px)
			} else {
				r.work.SetPixel(x, y, px)
			}
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
