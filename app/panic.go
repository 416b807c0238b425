package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"arscene/hal"
	"arscene/internal/glyph5x7"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/tinyfont"
)

// recoverPanic is deferred around application construction. A panic there
// is fatal: it is logged with its stack, a panic screen is mounted over the
// whole document and *err is set so the step can report it.
func recoverPanic(h hal.HAL, err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := string(debug.Stack())
	*err = fmt.Errorf("arscene panic: %v", v)

	if l := h.Logger(); l != nil {
		l.WithFields(logrus.Fields{"panic": v}).Error("arscene panic")
		for _, line := range strings.Split(stack, "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	d := h.Display()
	if d == nil || d.Document() == nil {
		return
	}
	d.Document().Body().Append(newPanicScreen(d.InnerWidth(), d.InnerHeight(), v, stack))
}

// panicScreen is an opaque element covering the window with the panic
// value and its stack, black on white.
type panicScreen struct {
	rect  image.Rectangle
	lines []string
}

func newPanicScreen(w, h int, v any, stack string) *panicScreen {
	lines := []string{
		"ARSCENE PANIC",
		fmt.Sprintf("%v", v),
	}
	for _, line := range strings.Split(stack, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return &panicScreen{rect: image.Rect(0, 0, w, h), lines: lines}
}

func (p *panicScreen) Bounds() image.Rectangle { return p.rect }

func (p *panicScreen) Paint(dst draw.Image, ratio float64) {
	area := image.Rect(
		int(float64(p.rect.Min.X)*ratio), int(float64(p.rect.Min.Y)*ratio),
		int(float64(p.rect.Max.X)*ratio), int(float64(p.rect.Max.Y)*ratio),
	).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	draw.Draw(dst, area, image.White, image.Point{}, draw.Src)

	d := panicDisplay{dst: dst, area: area}
	fg := color.RGBA{A: 255}
	lineH := int16(glyph5x7.Font.GetYAdvance())
	cols := int16(area.Dx() / glyph5x7.Advance)
	if cols <= 0 {
		cols = 1
	}

	y := lineH
	for _, line := range p.lines {
		for len(line) > 0 {
			if int(y) > area.Dy() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, glyph5x7.Font, 0, y, chunk, fg)
			y += lineH
			line = strings.TrimLeft(rest, " ")
		}
	}
}

// panicDisplay adapts a clipped region of dst to tinyfont.
type panicDisplay struct {
	dst  draw.Image
	area image.Rectangle
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.area.Dx()), int16(d.area.Dy())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	pt := image.Pt(d.area.Min.X+int(x), d.area.Min.Y+int(y))
	if !pt.In(d.area) {
		return
	}
	d.dst.Set(pt.X, pt.Y, c)
}

func (d panicDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
