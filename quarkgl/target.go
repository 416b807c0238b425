package quarkgl

import "image"

// target is the renderer's working color and depth buffer.
//
// Pixels are premultiplied RGBA, matching image.RGBA, so the resolved
// canvas can be composited with draw.Over as is.
type target struct {
	img   *image.RGBA
	depth []float32
}

func newTarget(w, h int) *target {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &target{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		depth: make([]float32, w*h),
	}
}

func (t *target) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills color with the premultiplied value p and resets depth.
func (t *target) Clear(p [4]uint8) {
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = p[0]
		pix[i+1] = p[1]
		pix[i+2] = p[2]
		pix[i+3] = p[3]
	}
	for i := range t.depth {
		t.depth[i] = 1e9
	}
}

// depthTest compares NDC z against the buffer and writes it on success.
func (t *target) depthTest(w, x, y int, z float32) bool {
	if z < -1 || z > 1 {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(t.depth) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := z*0.5 + 0.5
	if d >= t.depth[idx] {
		return false
	}
	t.depth[idx] = d
	return true
}

// SetPixel replaces the pixel at (x, y).
func (t *target) SetPixel(x, y int, p [4]uint8) {
	off := t.img.PixOffset(x, y)
	if off < 0 || off+3 >= len(t.img.Pix) {
		return
	}
	copy(t.img.Pix[off:off+4], p[:])
}

// BlendPixel composites p over the pixel at (x, y).
func (t *target) BlendPixel(x, y int, p [4]uint8) {
	off := t.img.PixOffset(x, y)
	if off < 0 || off+3 >= len(t.img.Pix) {
		return
	}
	d := t.img.Pix[off : off+4]
	ia := 255 - uint32(p[3])
	for i := 0; i < 4; i++ {
		d[i] = uint8(uint32(p[i]) + (uint32(d[i])*ia+127)/255)
	}
}

// resolveInto box-filters t down by factor ss into dst.
func (t *target) resolveInto(dst *image.RGBA, ss int) {
	if ss <= 1 {
		copy(dst.Pix, t.img.Pix)
		return
	}
	dw, dh := dst.Bounds().Dx(), dst.Bounds().Dy()
	sw, _ := t.Size()
	n := uint32(ss * ss)
	src := t.img.Pix
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			var acc [4]uint32
			for sy := 0; sy < ss; sy++ {
				row := ((y*ss + sy) * sw) * 4
				for sx := 0; sx < ss; sx++ {
					o := row + (x*ss+sx)*4
					if o+3 >= len(src) {
						continue
					}
					acc[0] += uint32(src[o+0])
					acc[1] += uint32(src[o+1])
					acc[2] += uint32(src[o+2])
					acc[3] += uint32(src[o+3])
				}
			}
			d := dst.PixOffset(x, y)
			dst.Pix[d+0] = uint8((acc[0] + n/2) / n)
			dst.Pix[d+1] = uint8((acc[1] + n/2) / n)
			dst.Pix[d+2] = uint8((acc[2] + n/2) / n)
			dst.Pix[d+3] = uint8((acc[3] + n/2) / n)
		}
	}
}
