package dom

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

type box struct {
	r      image.Rectangle
	c      color.RGBA
	clicks int
}

func (b *box) Bounds() image.Rectangle { return b.r }

func (b *box) Paint(dst draw.Image, ratio float64) {
	r := image.Rect(
		int(float64(b.r.Min.X)*ratio), int(float64(b.r.Min.Y)*ratio),
		int(float64(b.r.Max.X)*ratio), int(float64(b.r.Max.Y)*ratio),
	)
	draw.Draw(dst, r, image.NewUniform(b.c), image.Point{}, draw.Src)
}

func (b *box) Click() { b.clicks++ }

type plate struct{ r image.Rectangle }

func (p *plate) Bounds() image.Rectangle   { return p.r }
func (p *plate) Paint(draw.Image, float64) {}

func TestClickTopmost(t *testing.T) {
	doc := NewDocument()
	under := &box{r: image.Rect(0, 0, 100, 100)}
	over := &box{r: image.Rect(40, 40, 60, 60)}
	doc.Body().Append(under)
	doc.Body().Append(over)

	if !doc.Click(50, 50) {
		t.Fatal("expected click to be taken")
	}
	if over.clicks != 1 || under.clicks != 0 {
		t.Fatalf("clicks: over=%d under=%d", over.clicks, under.clicks)
	}

	doc.Click(10, 10)
	if under.clicks != 1 {
		t.Fatalf("under clicks = %d, want 1", under.clicks)
	}
	if doc.Click(500, 500) {
		t.Fatal("click outside every element was taken")
	}
}

func TestClickNested(t *testing.T) {
	doc := NewDocument()
	inner := NewContainer()
	b := &box{r: image.Rect(0, 0, 10, 10)}
	inner.Append(&plate{r: image.Rect(0, 0, 100, 100)})
	inner.Append(b)
	doc.Body().Append(inner)

	doc.Click(5, 5)
	if b.clicks != 1 {
		t.Fatalf("nested clicks = %d, want 1", b.clicks)
	}
	if !doc.Activate() || b.clicks != 2 {
		t.Fatalf("Activate did not reach nested clicker")
	}
}

func TestAppendMoves(t *testing.T) {
	c := NewContainer()
	a := &box{}
	b := &box{}
	c.Append(a)
	c.Append(b)
	c.Append(a)
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if c.Children()[1] != Element(a) {
		t.Fatal("re-appended element is not last")
	}
}

func TestPaintScales(t *testing.T) {
	doc := NewDocument()
	doc.Body().Append(&box{r: image.Rect(1, 1, 2, 2), c: color.RGBA{R: 0xFF, A: 0xFF}})
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	doc.Paint(dst, 2)
	if got := dst.RGBAAt(3, 3); got.R != 0xFF {
		t.Fatalf("pixel (3,3) = %v, want red", got)
	}
	if got := dst.RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("pixel (1,1) = %v, want empty", got)
	}
}
