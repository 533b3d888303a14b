package main

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Core is the editor's computational core. It owns its linear memory and
// the RGBA framebuffer inside it; the harness only reads that memory.
type Core interface {
	ScreenWidth() uint32
	ScreenHeight() uint32
	ScreenBufferOffset() uint32
	Memory() LinearMemory
	Frame()
	KeyDown(key Keycode)
	MouseMove(x, y float64)
	MouseDown(button MouseButton)
	MouseUp(button MouseButton)
}

// CoreBackend constructs a core from the startup resources.
type CoreBackend interface {
	NewCore(ctx context.Context, assets CoreAssets) (Core, error)
}

// InitializationError reports a core that rejected its resources.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("core initialization failed: %s", e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// Harness connects a core to a display surface and forwards device events
// to it. It is not safe for concurrent use: events, ticks and redraws
// must all come from the same goroutine.
type Harness struct {
	backend   CoreBackend
	surface   DisplaySurface
	manifest  []ResourceSpec
	scheduler *FrameScheduler
	core      Core
	frames    int
}

func NewHarness(backend CoreBackend, surface DisplaySurface, ticks TickSource) *Harness {
	h := &Harness{
		backend:  backend,
		surface:  surface,
		manifest: DefaultManifest,
	}
	h.scheduler = NewFrameScheduler(ticks, h.redraw)
	return h
}

// Start loads the resources, constructs the core, sizes the surface to
// the core screen and requests the first frame.
func (h *Harness) Start(ctx context.Context, origin ResourceOrigin) error {
	if h.core != nil {
		return errors.New("harness already started")
	}
	resources, err := LoadResources(ctx, origin, h.manifest)
	if err != nil {
		return err
	}
	assets, err := resources.CoreAssets()
	if err != nil {
		return &InitializationError{Err: err}
	}
	core, err := h.backend.NewCore(ctx, assets)
	if err != nil {
		var initErr *InitializationError
		if errors.As(err, &initErr) {
			return err
		}
		return &InitializationError{Err: err}
	}
	width, height := core.ScreenWidth(), core.ScreenHeight()
	if err := h.surface.Resize(int(width), int(height)); err != nil {
		closeCore(core)
		return err
	}
	logger.Info("core started", "width", width, "height", height)
	h.core = core
	h.scheduler.RequestFrame()
	return nil
}

func (h *Harness) Core() Core {
	return h.core
}

func (h *Harness) Scheduler() *FrameScheduler {
	return h.scheduler
}

// Frames is the number of redraws presented so far.
func (h *Harness) Frames() int {
	return h.frames
}

// LogicalSize is the core screen size; zero before Start.
func (h *Harness) LogicalSize() SurfaceSize {
	if h.core == nil {
		return SurfaceSize{}
	}
	return SurfaceSize{Width: float64(h.core.ScreenWidth()), Height: float64(h.core.ScreenHeight())}
}

// KeyPress forwards a key to the core when it has a mapping. The result
// tells the platform layer whether to suppress its default handling.
func (h *Harness) KeyPress(id string) bool {
	if h.core == nil {
		return false
	}
	key, ok := TranslateKey(id)
	if ok {
		logger.Debug("key down", "id", id, "key", key)
		h.core.KeyDown(key)
	}
	h.scheduler.RequestFrame()
	return ok
}

// PointerMove takes a position relative to the presented surface.
func (h *Harness) PointerMove(rawX, rawY float64, surface SurfaceSize) {
	if h.core == nil {
		return
	}
	if surface.Width > 0 && surface.Height > 0 {
		p := RescalePoint(rawX, rawY, surface, h.LogicalSize())
		h.core.MouseMove(p.X, p.Y)
	}
	h.scheduler.RequestFrame()
}

func (h *Harness) PointerDown(id int) {
	if h.core == nil {
		return
	}
	if button, ok := TranslateMouseButton(id); ok {
		logger.Debug("mouse down", "button", button)
		h.core.MouseDown(button)
	}
	h.scheduler.RequestFrame()
}

func (h *Harness) PointerUp(id int) {
	if h.core == nil {
		return
	}
	if button, ok := TranslateMouseButton(id); ok {
		logger.Debug("mouse up", "button", button)
		h.core.MouseUp(button)
	}
	h.scheduler.RequestFrame()
}

// Close releases the core. Events arriving afterwards are dropped.
func (h *Harness) Close() error {
	if h.core == nil {
		return nil
	}
	h.scheduler.Cancel()
	err := closeCore(h.core)
	h.core = nil
	return err
}

func closeCore(core Core) error {
	if c, ok := core.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (h *Harness) redraw() {
	h.core.Frame()
	PresentFrame(h.core, h.surface)
	h.frames++
	logger.Debug("frame presented", "frame", h.frames)
}
