package main

import (
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type GlfwApp interface {
	// Init runs once the GL context is current and returns the preferred
	// window size in screen coordinates.
	Init() (Size, error)
	OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	OnChar(char rune)
	OnMouseButton(button glfw.MouseButton, action glfw.Action)
	// OnCursorPos receives the cursor in framebuffer pixels.
	OnCursorPos(x, y float64)
	OnFramebufferSize(width, height int)
	FramePending() bool
	// Tick runs one display refresh and reports whether anything was drawn.
	Tick() bool
	Close() error
}

// WithGL opens a window and runs the app until the window is closed. The
// loop sleeps in WaitEvents while no frame is pending and otherwise ticks
// once per vsync interval.
func WithGL(windowTitle string, app GlfwApp) error {
	err := glfw.Init()
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	window, err := glfw.CreateWindow(640, 400, windowTitle, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return err
	}
	glfw.SwapInterval(1)

	size, err := app.Init()
	if err != nil {
		return err
	}
	defer app.Close()
	if size.X > 0 && size.Y > 0 {
		window.SetSize(size.X, size.Y)
	}

	framebufferSizeCallback := func(w *glfw.Window, width, height int) {
		app.OnFramebufferSize(width, height)
	}
	window.SetFramebufferSizeCallback(framebufferSizeCallback)
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.OnKey(key, scancode, action, mods)
	})
	window.SetCharCallback(func(w *glfw.Window, char rune) {
		app.OnChar(char)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		app.OnMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		fw, fh := w.GetFramebufferSize()
		ww, wh := w.GetSize()
		if ww > 0 && wh > 0 {
			x = x * float64(fw) / float64(ww)
			y = y * float64(fh) / float64(wh)
		}
		app.OnCursorPos(x, y)
	})
	width, height := window.GetFramebufferSize()
	framebufferSizeCallback(window, width, height)
	window.Show()

	for !window.ShouldClose() {
		if !app.FramePending() {
			glfw.WaitEvents()
			continue
		}
		glfw.PollEvents()
		if app.Tick() {
			window.SwapBuffers()
		}
	}
	return nil
}
