package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu        sync.Mutex
	img       *image.RGBA
	presented uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (f *hostFramebuffer) Width() int          { return f.img.Rect.Dx() }
func (f *hostFramebuffer) Height() int         { return f.img.Rect.Dy() }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.img.Stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.img.Pix }
func (f *hostFramebuffer) Image() *image.RGBA  { return f.img }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xFF
	}
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.presented++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.img.Pix)
}
