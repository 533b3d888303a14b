package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	fn2GlyphTableOffset = 0x027D
	fn2GlyphCount       = 92
	fn2FirstRune        = 33
	fn2SpaceWidth       = 5
	fn2ShadowPixels     = 1
)

var ErrMalformedFont = errors.New("malformed FN2 font")

// FN2Line is a horizontal run of set pixels in a glyph.
type FN2Line struct {
	X, Y, Width uint8
}

type FN2Glyph struct {
	Width  uint32
	Height uint32
	Lines  []FN2Line
}

// FN2 is a bitmap font in the game's FN2 format: a fixed table of glyphs
// for runes 33 upwards, each stored as runs of pixels.
type FN2 struct {
	Glyphs []FN2Glyph
}

func ParseFN2(data []byte) (*FN2, error) {
	offset := fn2GlyphTableOffset
	u32 := func() (uint32, error) {
		if offset+4 > len(data) {
			return 0, fmt.Errorf("%w: truncated at offset %#x", ErrMalformedFont, offset)
		}
		v := binary.LittleEndian.Uint32(data[offset:])
		offset += 4
		return v, nil
	}
	glyphs := make([]FN2Glyph, 0, fn2GlyphCount)
	for i := range fn2GlyphCount {
		var header [4]uint32
		for j := range header {
			v, err := u32()
			if err != nil {
				return nil, err
			}
			header[j] = v
		}
		width, height, colorBytes, lineBytes := header[0], header[1], header[2], header[3]
		if width > 255 || height > 255 {
			return nil, fmt.Errorf("%w: glyph %d is %dx%d", ErrMalformedFont, i, width, height)
		}
		if lineBytes%3 != 0 {
			return nil, fmt.Errorf("%w: glyph %d has %d line bytes, not whole runs", ErrMalformedFont, i, lineBytes)
		}
		if uint64(offset)+uint64(colorBytes)+uint64(lineBytes) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: glyph %d runs past end of data", ErrMalformedFont, i)
		}
		offset += int(colorBytes)
		glyph := FN2Glyph{Width: width, Height: height}
		for range lineBytes / 3 {
			line := FN2Line{X: data[offset], Y: data[offset+1], Width: data[offset+2]}
			offset += 3
			if line.Width == 0 {
				continue
			}
			if uint32(line.X)+uint32(line.Width) > width || uint32(line.Y) >= height {
				return nil, fmt.Errorf("%w: glyph %d has a run outside its bounds", ErrMalformedFont, i)
			}
			glyph.Lines = append(glyph.Lines, line)
		}
		glyphs = append(glyphs, glyph)
	}
	return &FN2{Glyphs: glyphs}, nil
}

// Face renders the font through the x/image/font interfaces, one font
// pixel per screen pixel.
func (f *FN2) Face() font.Face {
	face := &fn2Face{masks: make([]*image.Alpha, len(f.Glyphs))}
	for i, g := range f.Glyphs {
		mask := image.NewAlpha(image.Rect(0, 0, int(g.Width), int(g.Height)))
		for _, line := range g.Lines {
			for x := range int(line.Width) {
				mask.Pix[int(line.Y)*mask.Stride+int(line.X)+x] = 0xff
			}
		}
		face.masks[i] = mask
	}
	if len(f.Glyphs) > 0 {
		face.lineHeight = int(f.Glyphs[0].Height) + fn2ShadowPixels
	}
	return face
}

type fn2Face struct {
	masks      []*image.Alpha
	lineHeight int
}

var emptyMask = image.NewAlpha(image.Rectangle{})

func (f *fn2Face) mask(r rune) (*image.Alpha, bool) {
	i := int(r) - fn2FirstRune
	if i < 0 || i >= len(f.masks) {
		return nil, false
	}
	return f.masks[i], true
}

func (f *fn2Face) Close() error { return nil }

func (f *fn2Face) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	if r < fn2FirstRune {
		return image.Rectangle{}, emptyMask, image.Point{}, fixed.I(fn2SpaceWidth), true
	}
	mask, ok := f.mask(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Round()
	y := dot.Y.Round() - f.lineHeight
	size := mask.Bounds().Size()
	dr := image.Rect(x, y, x+size.X, y+size.Y)
	return dr, mask, image.Point{}, fixed.I(size.X + fn2ShadowPixels), true
}

func (f *fn2Face) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	if r < fn2FirstRune {
		return fixed.Rectangle26_6{}, fixed.I(fn2SpaceWidth), true
	}
	mask, ok := f.mask(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	size := mask.Bounds().Size()
	bounds := fixed.R(0, -f.lineHeight, size.X, size.Y-f.lineHeight)
	return bounds, fixed.I(size.X + fn2ShadowPixels), true
}

func (f *fn2Face) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	_, advance, ok := f.GlyphBounds(r)
	return advance, ok
}

func (f *fn2Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f *fn2Face) Metrics() font.Metrics {
	return font.Metrics{
		Height:    fixed.I(f.lineHeight),
		Ascent:    fixed.I(f.lineHeight),
		CapHeight: fixed.I(f.lineHeight),
		XHeight:   fixed.I(f.lineHeight),
	}
}
