package main

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	previewScreenWidth  = 320
	previewScreenHeight = 200
	previewTileSize     = 20
	// framebuffer offset within the arena
	previewHeaderSize = 256
	previewStatusRows = 20
)

var (
	colorBlack        = color.NRGBA{0, 0, 0, 255}
	colorWhite        = color.NRGBA{255, 255, 255, 255}
	colorRed          = color.NRGBA{255, 0, 0, 255}
	colorLightGreen   = color.NRGBA{100, 255, 100, 255}
	colorStatusBorder = color.NRGBA{200, 200, 200, 255}
)

// PreviewBackend builds an in-process stand-in core that shows the loaded
// textures and font and echoes input. It carries none of the editor's
// level logic.
type PreviewBackend struct{}

func (PreviewBackend) NewCore(ctx context.Context, assets CoreAssets) (Core, error) {
	return NewPreviewCore(assets)
}

type PreviewCore struct {
	arena   ByteMemory
	screen  *image.NRGBA
	floor   *image.NRGBA
	walls   *image.NRGBA
	shadows *image.NRGBA
	face    font.Face
	mouse   image.Point
	buttons [2]bool
	lastKey string
}

func NewPreviewCore(assets CoreAssets) (*PreviewCore, error) {
	for name, img := range map[string]DecodedImage{
		FloorTextureName:   assets.Floor,
		WallsTextureName:   assets.Walls,
		ShadowsTextureName: assets.ShadowsAlpha,
	} {
		if !img.Valid() {
			return nil, &InitializationError{Err: fmt.Errorf("texture %s: invalid %v", name, img)}
		}
	}
	fn2, err := ParseFN2(assets.Font)
	if err != nil {
		return nil, &InitializationError{Err: err}
	}
	arena := make(ByteMemory, previewHeaderSize+previewScreenWidth*previewScreenHeight*4)
	screen := &image.NRGBA{
		Pix:    arena[previewHeaderSize:],
		Stride: previewScreenWidth * 4,
		Rect:   image.Rect(0, 0, previewScreenWidth, previewScreenHeight),
	}
	return &PreviewCore{
		arena:   arena,
		screen:  screen,
		floor:   assets.Floor.NRGBA(),
		walls:   assets.Walls.NRGBA(),
		shadows: assets.ShadowsAlpha.NRGBA(),
		face:    fn2.Face(),
	}, nil
}

func (c *PreviewCore) ScreenWidth() uint32        { return previewScreenWidth }
func (c *PreviewCore) ScreenHeight() uint32       { return previewScreenHeight }
func (c *PreviewCore) ScreenBufferOffset() uint32 { return previewHeaderSize }
func (c *PreviewCore) Memory() LinearMemory       { return c.arena }

func (c *PreviewCore) KeyDown(key Keycode) {
	c.lastKey = key.String()
}

func (c *PreviewCore) MouseMove(x, y float64) {
	c.mouse = image.Pt(clampInt(int(x), 0, previewScreenWidth-1), clampInt(int(y), 0, previewScreenHeight-1))
}

func (c *PreviewCore) MouseDown(button MouseButton) {
	c.setButton(button, true)
}

func (c *PreviewCore) MouseUp(button MouseButton) {
	c.setButton(button, false)
}

func (c *PreviewCore) setButton(button MouseButton, down bool) {
	if button >= 0 && int(button) < len(c.buttons) {
		c.buttons[button] = down
	}
}

// Frame redraws the whole screen from the current state.
func (c *PreviewCore) Frame() {
	screen := c.screen
	levelRect := image.Rect(0, 0, previewScreenWidth, previewScreenHeight-2*previewStatusRows)
	tileTexture(screen, levelRect, c.floor)

	paletteRect := image.Rect(0, levelRect.Max.Y, previewScreenWidth, levelRect.Max.Y+previewStatusRows)
	draw.Draw(screen, paletteRect, image.NewUniform(colorBlack), image.Point{}, draw.Src)
	draw.Draw(screen, paletteRect, c.walls, c.walls.Bounds().Min, draw.Src)

	tile := c.mouse.Div(previewTileSize).Mul(previewTileSize)
	cursor := image.Rect(tile.X, tile.Y, tile.X+previewTileSize, tile.Y+previewTileSize).Intersect(levelRect)
	if c.buttons[MousePrimary] {
		draw.Draw(screen, cursor, c.shadows, c.shadows.Bounds().Min, draw.Over)
	}
	cursorColor := colorWhite
	if c.buttons[MouseSecondary] {
		cursorColor = colorLightGreen
	}
	strokeRect(screen, cursor, cursorColor)

	statusRect := image.Rect(0, paletteRect.Max.Y, previewScreenWidth, previewScreenHeight)
	draw.Draw(screen, statusRect, image.NewUniform(colorBlack), image.Point{}, draw.Src)
	strokeRect(screen, statusRect, colorStatusBorder)
	status := fmt.Sprintf("X: %d Y: %d", c.mouse.X, c.mouse.Y)
	if c.lastKey != "" {
		status += " KEY: " + c.lastKey
	}
	baseline := statusRect.Min.Y + 2 + c.face.Metrics().Ascent.Ceil()
	c.drawText(status, image.Pt(statusRect.Min.X+4, baseline))
}

func (c *PreviewCore) drawText(text string, baseline image.Point) {
	shadow := font.Drawer{
		Dst:  c.screen,
		Src:  image.NewUniform(colorBlack),
		Face: c.face,
		Dot:  fixed.P(baseline.X+fn2ShadowPixels, baseline.Y+fn2ShadowPixels),
	}
	shadow.DrawString(text)
	glyphs := font.Drawer{
		Dst:  c.screen,
		Src:  image.NewUniform(colorRed),
		Face: c.face,
		Dot:  fixed.P(baseline.X, baseline.Y),
	}
	glyphs.DrawString(text)
}

func tileTexture(dst *image.NRGBA, r image.Rectangle, tex *image.NRGBA) {
	size := tex.Bounds().Size()
	for y := r.Min.Y; y < r.Max.Y; y += size.Y {
		for x := r.Min.X; x < r.Max.X; x += size.X {
			cell := image.Rect(x, y, x+size.X, y+size.Y).Intersect(r)
			draw.Draw(dst, cell, tex, tex.Bounds().Min, draw.Src)
		}
	}
}

func strokeRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetNRGBA(x, r.Min.Y, c)
		dst.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetNRGBA(r.Min.X, y, c)
		dst.SetNRGBA(r.Max.X-1, y, c)
	}
}

func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
