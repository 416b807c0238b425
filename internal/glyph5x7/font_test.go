package glyph5x7

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

type gridDisplay struct {
	w, h int16
	set  map[[2]int16]bool
}

func newGrid(w, h int16) *gridDisplay {
	return &gridDisplay{w: w, h: h, set: map[[2]int16]bool{}}
}

func (d *gridDisplay) Size() (x, y int16) { return d.w, d.h }
func (d *gridDisplay) Display() error     { return nil }

func (d *gridDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.set[[2]int16{x, y}] = true
}

func TestGlyphBaseline(t *testing.T) {
	d := newGrid(16, 16)
	Font.GetGlyph('L').Draw(d, 0, 10, color.RGBA{A: 0xFF})

	// 'L' is a full-height left column plus a full bottom row.
	for y := int16(4); y <= 10; y++ {
		if !d.set[[2]int16{0, y}] {
			t.Fatalf("missing stem pixel at y=%d", y)
		}
	}
	for x := int16(0); x < Width; x++ {
		if !d.set[[2]int16{x, 10}] {
			t.Fatalf("missing base pixel at x=%d", x)
		}
	}
	if d.set[[2]int16{0, 3}] || d.set[[2]int16{0, 11}] {
		t.Fatal("glyph drawn outside its cell")
	}
}

func TestLineWidth(t *testing.T) {
	_, outbox := tinyfont.LineWidth(Font, "START AR")
	if want := uint32(8 * Advance); outbox != want {
		t.Fatalf("outbox width = %d, want %d", outbox, want)
	}
}

func TestLowercaseAndFallback(t *testing.T) {
	if !Covered('a') || !Covered('Z') || !Covered(' ') {
		t.Fatal("expected coverage for letters and space")
	}
	if Covered('#') {
		t.Fatal("unexpected coverage for '#'")
	}
	if lookup('r') != lookup('R') {
		t.Fatal("lowercase should render as uppercase")
	}
	if lookup('#') != lookup('?') {
		t.Fatal("uncovered rune should render as '?'")
	}
}
