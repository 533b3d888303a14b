package main

import (
	"context"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// App runs a harness in a glfw window.
type App struct {
	ctx     context.Context
	backend CoreBackend
	origin  ResourceOrigin
	scale   int
	clock   *FrameClock
	surface *GLSurface
	harness *Harness
}

func CreateApp(ctx context.Context, backend CoreBackend, origin ResourceOrigin, scale int) *App {
	return &App{
		ctx:     ctx,
		backend: backend,
		origin:  origin,
		scale:   scale,
		clock:   NewFrameClock(),
	}
}

func (app *App) Init() (Size, error) {
	surface, err := CreateGLSurface()
	if err != nil {
		return Size{}, err
	}
	harness := NewHarness(app.backend, surface, app.clock)
	if err := harness.Start(app.ctx, app.origin); err != nil {
		surface.Close()
		return Size{}, err
	}
	app.surface = surface
	app.harness = harness
	logical := harness.LogicalSize()
	return Size{X: int(logical.Width) * app.scale, Y: int(logical.Height) * app.scale}, nil
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	id, ok := glfwKeyIdentifier(key)
	if !ok {
		// modifiers and printable keys; the latter reach OnChar
		app.harness.Scheduler().RequestFrame()
		return
	}
	app.harness.KeyPress(id)
}

func (app *App) OnChar(char rune) {
	app.harness.KeyPress(string(char))
}

func (app *App) OnMouseButton(button glfw.MouseButton, action glfw.Action) {
	id := glfwButtonIdentifier(button)
	switch action {
	case glfw.Press:
		app.harness.PointerDown(id)
	case glfw.Release:
		app.harness.PointerUp(id)
	}
}

// OnCursorPos forwards positions over the presented screen. Positions in
// the letterbox bars only trigger a redraw.
func (app *App) OnCursorPos(x, y float64) {
	rect := app.surface.PresentedRect()
	if rect.Empty() || x < float64(rect.Min.X) || y < float64(rect.Min.Y) ||
		x >= float64(rect.Max.X) || y >= float64(rect.Max.Y) {
		app.harness.Scheduler().RequestFrame()
		return
	}
	presented := SurfaceSize{Width: float64(rect.Dx()), Height: float64(rect.Dy())}
	app.harness.PointerMove(x-float64(rect.Min.X), y-float64(rect.Min.Y), presented)
}

func (app *App) OnFramebufferSize(width, height int) {
	logger.Debug("OnFramebufferSize", "width", width, "height", height)
	app.surface.SetFramebufferSize(width, height)
	app.harness.Scheduler().RequestFrame()
}

func (app *App) FramePending() bool {
	return app.clock.Pending()
}

func (app *App) Tick() bool {
	return app.clock.Tick() > 0
}

func (app *App) Close() error {
	logger.Debug("Close")
	err := app.harness.Close()
	if serr := app.surface.Close(); err == nil {
		err = serr
	}
	return err
}
