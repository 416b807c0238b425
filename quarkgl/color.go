package quarkgl

// Color is an RGBA color in 8-bit channels. It is not premultiplied.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex converts a 0xRRGGBB value to an opaque Color.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// Hex returns the 0xRRGGBB value of c.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// linear is a color with float channels in 0..1, used during shading.
type linear struct {
	R, G, B float32
}

func (c Color) linear() linear {
	return linear{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func (l linear) mul(o linear) linear    { return linear{l.R * o.R, l.G * o.G, l.B * o.B} }
func (l linear) add(o linear) linear    { return linear{l.R + o.R, l.G + o.G, l.B + o.B} }
func (l linear) scale(s float32) linear { return linear{l.R * s, l.G * s, l.B * s} }

// premul packs l with coverage a (0..1) into premultiplied 8-bit channels.
func (l linear) premul(a float32) [4]uint8 {
	a = clampF32(a, 0, 1)
	return [4]uint8{
		toByte(l.R * a),
		toByte(l.G * a),
		toByte(l.B * a),
		toByte(a),
	}
}

func toByte(v float32) uint8 {
	return uint8(clampF32(v, 0, 1)*255 + 0.5)
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
