package hal

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"arscene/dom"
	"arscene/xr/emulator"
)

type tapTarget struct {
	rect   image.Rectangle
	clicks int
}

func (t *tapTarget) Bounds() image.Rectangle { return t.rect }
func (t *tapTarget) Click()                  { t.clicks++ }

func (t *tapTarget) Paint(dst draw.Image, ratio float64) {
	r := image.Rect(
		int(float64(t.rect.Min.X)*ratio), int(float64(t.rect.Min.Y)*ratio),
		int(float64(t.rect.Max.X)*ratio), int(float64(t.rect.Max.Y)*ratio),
	)
	draw.Draw(dst, r, image.White, image.Point{}, draw.Src)
}

func testOptions() Options {
	return Options{
		Window:   WindowConfig{Width: 40, Height: 30},
		Emulator: emulator.DefaultConfig(),
	}
}

func TestDispatchScalesToCSSPixels(t *testing.T) {
	doc := dom.NewDocument()
	target := &tapTarget{rect: image.Rect(10, 10, 20, 20)}
	doc.Body().Append(target)

	quit := dispatch(doc, 2, []InputEvent{
		{Kind: InputTap, X: 30, Y: 30}, // (15,15) CSS: inside
		{Kind: InputTap, X: 50, Y: 50}, // (25,25) CSS: outside
		{Kind: InputActivate},
	})
	if quit {
		t.Fatal("unexpected quit")
	}
	if target.clicks != 2 {
		t.Fatalf("clicks = %d, want 2", target.clicks)
	}
	if !dispatch(doc, 1, []InputEvent{{Kind: InputQuit}}) {
		t.Fatal("escape did not quit")
	}
}

func TestHostDisplaySizes(t *testing.T) {
	opts := testOptions()
	h := newHost(opts, 2)
	d := h.Display()
	if d.InnerWidth() != 40 || d.InnerHeight() != 30 || d.PixelRatio() != 2 {
		t.Fatalf("display = %dx%d@%v", d.InnerWidth(), d.InnerHeight(), d.PixelRatio())
	}
	fb := d.Framebuffer()
	if fb.Width() != 80 || fb.Height() != 60 || fb.Format() != PixelFormatRGBA8888 {
		t.Fatalf("framebuffer = %dx%d", fb.Width(), fb.Height())
	}
	if fb.StrideBytes() != 80*4 || len(fb.Buffer()) != 80*60*4 {
		t.Fatalf("stride = %d", fb.StrideBytes())
	}
}

func TestHostTimeIsMonotonic(t *testing.T) {
	tm := newHostTime()
	tm.set(10)
	tm.set(5)
	if tm.Now() != 10 {
		t.Fatalf("Now = %v, want 10", tm.Now())
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := testOptions()
	opts.Window.Width = 0
	if err := opts.validate(); err == nil {
		t.Fatal("zero width accepted")
	}
	opts = testOptions()
	opts.Emulator.ConsentDelayTicks = -1
	if err := opts.validate(); err == nil {
		t.Fatal("bad emulator config accepted")
	}
}

func TestRunHeadlessDeterministicTimeline(t *testing.T) {
	var stamps []float64
	newApp := func(h HAL) func() error {
		return func() error {
			stamps = append(stamps, h.Time().Now())
			return nil
		}
	}
	cfg := HeadlessConfig{Hz: 50, Ticks: 3, NoWait: true}
	if err := RunHeadless(context.Background(), newApp, cfg, testOptions()); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	want := []float64{20, 40, 60}
	if len(stamps) != len(want) {
		t.Fatalf("stamps = %v", stamps)
	}
	for i := range want {
		if stamps[i] != want[i] {
			t.Fatalf("stamps = %v, want %v", stamps, want)
		}
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	newApp := func(HAL) func() error {
		return func() error {
			n++
			if n == 2 {
				cancel()
			}
			return nil
		}
	}
	err := RunHeadless(ctx, newApp, HeadlessConfig{NoWait: true}, testOptions())
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunHeadlessClickAndSnapshot(t *testing.T) {
	target := &tapTarget{rect: image.Rect(0, 0, 10, 10)}
	newApp := func(h HAL) func() error {
		h.Display().Document().Body().Append(target)
		return nil
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	cfg := HeadlessConfig{Ticks: 5, NoWait: true, ClickAfterTicks: 2, Snapshot: path}
	if err := RunHeadless(context.Background(), newApp, cfg, testOptions()); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if target.clicks != 1 {
		t.Fatalf("clicks = %d, want 1", target.clicks)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("snapshot size = %v", b)
	}
	if r, _, _, _ := img.At(5, 5).RGBA(); r != 0xFFFF {
		t.Fatalf("painted element missing from snapshot")
	}
	if r, g, b, _ := img.At(30, 20).RGBA(); r>>8 != backdropR || g>>8 != backdropG || b>>8 != backdropB {
		t.Fatalf("backdrop = %v %v %v", r>>8, g>>8, b>>8)
	}
}

func TestRunHeadlessSnapshotOnStepError(t *testing.T) {
	fatal := errors.New("fatal")
	newApp := func(h HAL) func() error {
		h.Display().Document().Body().Append(&tapTarget{rect: image.Rect(0, 0, 10, 10)})
		n := 0
		return func() error {
			n++
			if n == 2 {
				return fatal
			}
			return nil
		}
	}
	path := filepath.Join(t.TempDir(), "fatal.png")
	cfg := HeadlessConfig{Ticks: 10, NoWait: true, Snapshot: path}
	if err := RunHeadless(context.Background(), newApp, cfg, testOptions()); !errors.Is(err, fatal) {
		t.Fatalf("err = %v, want %v", err, fatal)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if r, _, _, _ := img.At(5, 5).RGBA(); r != 0xFFFF {
		t.Fatal("composed frame missing from snapshot")
	}
}
