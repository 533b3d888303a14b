package main

import (
	"math"
	"testing"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		id   string
		want Keycode
	}{
		{"Escape", KeyEscape},
		{"Backspace", KeyBackspace},
		{"Enter", KeyReturn},
		{"ArrowLeft", KeyLeft},
		{"ArrowUp", KeyUp},
		{"ArrowRight", KeyRight},
		{"ArrowDown", KeyDown},
		{"PageUp", KeyPageUp},
		{"PageDown", KeyPageDown},
		{"1", KeyNum1},
		{"2", KeyNum2},
		{"a", KeyA},
		{"c", KeyC},
		{"e", KeyE},
		{"q", KeyQ},
		{"s", KeyS},
		{"w", KeyW},
		{"x", KeyX},
		{"y", KeyY},
		{"z", KeyZ},
		{"F1", KeyF1},
		{"F2", KeyF2},
		{"F3", KeyF3},
		{"F4", KeyF4},
		{"F6", KeyF6},
		{"F7", KeyF7},
		{"F8", KeyF8},
		{"F9", KeyF9},
		{" ", KeySpace},
		{"+", KeyPlus},
		{"-", KeyMinus},
	}
	for _, tt := range tests {
		got, ok := TranslateKey(tt.id)
		if !ok {
			t.Errorf("TranslateKey(%q) not mapped, want %v", tt.id, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("TranslateKey(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestTranslateKey_Unmapped(t *testing.T) {
	for _, id := range []string{"Tab", "F5", "F10", "Q", "b", "Shift", "", "Home"} {
		if k, ok := TranslateKey(id); ok {
			t.Errorf("TranslateKey(%q) = %v, want unmapped", id, k)
		}
	}
}

func TestKeycode_String(t *testing.T) {
	if got := KeyQ.String(); got != "Q" {
		t.Errorf("KeyQ.String() = %q", got)
	}
	for k := Keycode(0); k < numKeycodes; k++ {
		if k.String() == "" {
			t.Errorf("Keycode %d has no name", int(k))
		}
	}
}

func TestTranslateMouseButton(t *testing.T) {
	tests := []struct {
		id     int
		want   MouseButton
		wantOK bool
	}{
		{0, MousePrimary, true},
		{2, MouseSecondary, true},
		{1, 0, false},
		{3, 0, false},
		{4, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := TranslateMouseButton(tt.id)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("TranslateMouseButton(%d) = %v, %v; want %v, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRescalePoint(t *testing.T) {
	logical := SurfaceSize{Width: 320, Height: 200}
	tests := []struct {
		name       string
		rawX, rawY float64
		surface    SurfaceSize
		want       LogicalPoint
	}{
		{"identity", 10, 20, SurfaceSize{320, 200}, LogicalPoint{10, 20}},
		{"double", 640, 400, SurfaceSize{640, 400}, LogicalPoint{320, 200}},
		{"half", 160, 100, SurfaceSize{640, 400}, LogicalPoint{80, 50}},
		{"origin", 0, 0, SurfaceSize{960, 600}, LogicalPoint{0, 0}},
		{"non-uniform", 100, 100, SurfaceSize{400, 100}, LogicalPoint{80, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RescalePoint(tt.rawX, tt.rawY, tt.surface, logical)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("RescalePoint(%v, %v, %v) = %v, want %v", tt.rawX, tt.rawY, tt.surface, got, tt.want)
			}
		})
	}
}

func TestRescalePoint_Proportional(t *testing.T) {
	logical := SurfaceSize{Width: 320, Height: 200}
	for _, surface := range []SurfaceSize{{320, 200}, {1000, 625}, {333, 777}} {
		for _, frac := range []float64{0, 0.25, 0.5, 0.999} {
			p := RescalePoint(frac*surface.Width, frac*surface.Height, surface, logical)
			if math.Abs(p.X/logical.Width-frac) > 1e-9 || math.Abs(p.Y/logical.Height-frac) > 1e-9 {
				t.Errorf("surface %v fraction %v: got %v", surface, frac, p)
			}
		}
	}
}

func TestKeycode_Ordinals(t *testing.T) {
	tests := []struct {
		key  Keycode
		want int
	}{
		{KeyEscape, 0},
		{KeyKpEnter, 10},
		{KeyA, 15},
		{KeyC, 16},
		{KeyQ, 17},
		{KeyZ, 22},
		{KeyNum1, 23},
		{KeyF1, 25},
		{KeyF6, 29},
		{KeyF9, 32},
		{KeyE, 33},
	}
	for _, tt := range tests {
		if int(tt.key) != tt.want {
			t.Errorf("%v = %d, want %d", tt.key, int(tt.key), tt.want)
		}
	}
}
