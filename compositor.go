package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// LinearMemory is read access to a core's memory. Read returns a view
// that is only valid until the next call into the core.
type LinearMemory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
}

// DisplaySurface presents RGBA8 bitmaps. Resize is called once, before
// the first Blit.
type DisplaySurface interface {
	Resize(width, height int) error
	Blit(width, height int, pix []byte)
}

// BoundaryError is the panic value raised when a framebuffer would
// extend past the end of the core's memory.
type BoundaryError struct {
	Offset, Length uint64
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("framebuffer [%d, %d) outside core memory", e.Offset, e.Offset+e.Length)
}

// FramebufferView returns the width*height*4 bytes at offset. The view
// aliases core memory and must not be kept past the current frame.
func FramebufferView(mem LinearMemory, offset, width, height uint32) []byte {
	length := uint64(width) * uint64(height) * 4
	if uint64(offset)+length > 1<<32 {
		panic(&BoundaryError{Offset: uint64(offset), Length: length})
	}
	view, ok := mem.Read(offset, uint32(length))
	if !ok || uint64(len(view)) != length {
		panic(&BoundaryError{Offset: uint64(offset), Length: length})
	}
	return view
}

// PresentFrame copies the core's current framebuffer onto the surface
// at the origin, replacing everything.
func PresentFrame(core Core, surface DisplaySurface) {
	width := core.ScreenWidth()
	height := core.ScreenHeight()
	view := FramebufferView(core.Memory(), core.ScreenBufferOffset(), width, height)
	surface.Blit(int(width), int(height), view)
}

// ByteMemory serves a plain byte slice as linear memory.
type ByteMemory []byte

func (m ByteMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	end := uint64(offset) + uint64(byteCount)
	if end > uint64(len(m)) {
		return nil, false
	}
	return m[offset:end:end], true
}

// ImageSurface keeps the presented pixels in memory. Pixels are taken
// as unmultiplied RGBA.
type ImageSurface struct {
	img   *image.NRGBA
	blits int
}

func NewImageSurface() *ImageSurface {
	return &ImageSurface{}
}

func (s *ImageSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	s.img = image.NewNRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (s *ImageSurface) Blit(width, height int, pix []byte) {
	if s.img == nil {
		panic("ImageSurface: Blit before Resize")
	}
	size := s.img.Bounds().Size()
	if width != size.X || height != size.Y {
		panic(fmt.Sprintf("ImageSurface: blit of %dx%d onto %dx%d surface", width, height, size.X, size.Y))
	}
	copy(s.img.Pix, pix)
	s.blits++
}

// Image returns the presented pixels; nil before Resize.
func (s *ImageSurface) Image() *image.NRGBA {
	return s.img
}

func (s *ImageSurface) Blits() int {
	return s.blits
}

func (s *ImageSurface) WritePNG(w io.Writer) error {
	if s.img == nil {
		return fmt.Errorf("nothing presented")
	}
	return png.Encode(w, s.img)
}
