package main

import (
	"context"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestGlfwKeyIdentifier(t *testing.T) {
	tests := []struct {
		key    glfw.Key
		want   string
		wantOK bool
	}{
		{glfw.KeyEnter, "Enter", true},
		{glfw.KeyKPEnter, "Enter", true},
		{glfw.KeyEscape, "Escape", true},
		{glfw.KeyUp, "ArrowUp", true},
		{glfw.KeyPageDown, "PageDown", true},
		{glfw.KeyF9, "F9", true},
		{glfw.KeyLeftShift, "", false},
		{glfw.KeyQ, "", false},
		{glfw.KeySpace, "", false},
	}
	for _, tt := range tests {
		got, ok := glfwKeyIdentifier(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("glfwKeyIdentifier(%v) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestGlfwButtonIdentifier(t *testing.T) {
	tests := []struct {
		button glfw.MouseButton
		want   int
	}{
		{glfw.MouseButtonLeft, 0},
		{glfw.MouseButtonMiddle, 1},
		{glfw.MouseButtonRight, 2},
		{glfw.MouseButton4, 3},
	}
	for _, tt := range tests {
		if got := glfwButtonIdentifier(tt.button); got != tt.want {
			t.Errorf("glfwButtonIdentifier(%v) = %d, want %d", tt.button, got, tt.want)
		}
	}
}

// newKeyTestApp runs an App's harness on an ImageSurface so key handling
// can be driven without a window.
func newKeyTestApp(t *testing.T) (*App, *fakeCore) {
	t.Helper()
	core := newFakeCore(4, 4, 0)
	app := CreateApp(context.Background(), &fakeBackend{core: core}, FSOrigin{FS: testAssets(t)}, 1)
	app.harness = NewHarness(app.backend, NewImageSurface(), app.clock)
	if err := app.harness.Start(app.ctx, app.origin); err != nil {
		t.Fatalf("Start: %v", err)
	}
	app.clock.Tick()
	return app, core
}

func TestApp_OnKey(t *testing.T) {
	app, core := newKeyTestApp(t)
	app.OnKey(glfw.KeyF1, 0, glfw.Press, 0)
	app.OnKey(glfw.KeyF1, 0, glfw.Repeat, 0)
	app.OnKey(glfw.KeyF1, 0, glfw.Release, 0)
	if len(core.calls) != 2 || core.calls[0] != "key_down F1" {
		t.Errorf("calls = %v", core.calls)
	}
	if !app.FramePending() {
		t.Error("no frame requested")
	}
}

func TestApp_OnKeyUnnamedRequestsFrame(t *testing.T) {
	app, core := newKeyTestApp(t)
	app.OnKey(glfw.KeyLeftShift, 0, glfw.Press, glfw.ModShift)
	if len(core.calls) != 0 {
		t.Errorf("calls = %v", core.calls)
	}
	if !app.FramePending() {
		t.Fatal("modifier press did not request a frame")
	}
	if !app.Tick() || core.frames != 2 {
		t.Errorf("frames = %d", core.frames)
	}
}

func TestApp_OnChar(t *testing.T) {
	app, core := newKeyTestApp(t)
	app.OnChar('q')
	app.OnChar('Q')
	if len(core.calls) != 1 || core.calls[0] != "key_down Q" {
		t.Errorf("calls = %v", core.calls)
	}
}
