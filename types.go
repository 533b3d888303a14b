package main

import (
	"fmt"
	"image"
)

type Size = image.Point
type Rect = image.Rectangle

// DecodedImage is an RGBA8 bitmap: unmultiplied alpha, row-major,
// top row first, len(Pix) == Width*Height*4.
type DecodedImage struct {
	Width  uint32
	Height uint32
	Pix    []byte
}

func (img DecodedImage) String() string {
	return fmt.Sprintf("DecodedImage(%dx%d)", img.Width, img.Height)
}

// Stride is the number of bytes per row.
func (img DecodedImage) Stride() int {
	return int(img.Width) * 4
}

func (img DecodedImage) Valid() bool {
	return img.Width > 0 && img.Height > 0 && len(img.Pix) == int(img.Width)*int(img.Height)*4
}

// NRGBA wraps the pixels without copying.
func (img DecodedImage) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: img.Stride(),
		Rect:   image.Rect(0, 0, int(img.Width), int(img.Height)),
	}
}

// CoreAssets are the decoded startup resources a core is constructed from.
type CoreAssets struct {
	Floor        DecodedImage
	Walls        DecodedImage
	ShadowsAlpha DecodedImage
	Font         []byte
}
