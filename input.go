package main

import (
	"fmt"
)

// Keycode is the closed set of keys the editor core understands.
type Keycode int

const (
	KeyEscape Keycode = iota
	KeyBackspace
	KeyReturn
	KeySpace
	KeyPageDown
	KeyPageUp
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyKpEnter
	KeyKpMinus
	KeyKpPlus
	KeyMinus
	KeyPlus
	KeyA
	KeyC
	KeyQ
	KeyS
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyNum1
	KeyNum2
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	// no counterpart in the core key order, kept after it
	KeyE
	numKeycodes
)

var keycodeNames = [numKeycodes]string{
	"Escape", "Backspace", "Return", "Space", "PageDown", "PageUp",
	"Up", "Down", "Left", "Right", "KpEnter", "KpMinus", "KpPlus",
	"Minus", "Plus", "A", "C", "Q", "S", "W", "X", "Y", "Z",
	"Num1", "Num2", "F1", "F2", "F3", "F4", "F6", "F7", "F8", "F9", "E",
}

func (k Keycode) String() string {
	if k >= 0 && k < numKeycodes {
		return keycodeNames[k]
	}
	return fmt.Sprintf("Keycode(%d)", int(k))
}

// platformKeys maps KeyboardEvent.key style identifiers to keycodes.
var platformKeys = map[string]Keycode{
	"Escape":     KeyEscape,
	"Backspace":  KeyBackspace,
	"Enter":      KeyReturn,
	"ArrowLeft":  KeyLeft,
	"ArrowUp":    KeyUp,
	"ArrowRight": KeyRight,
	"ArrowDown":  KeyDown,
	"PageUp":     KeyPageUp,
	"PageDown":   KeyPageDown,
	"1":          KeyNum1,
	"2":          KeyNum2,
	"a":          KeyA,
	"c":          KeyC,
	"e":          KeyE,
	"q":          KeyQ,
	"s":          KeyS,
	"w":          KeyW,
	"x":          KeyX,
	"y":          KeyY,
	"z":          KeyZ,
	"F1":         KeyF1,
	"F2":         KeyF2,
	"F3":         KeyF3,
	"F4":         KeyF4,
	"F6":         KeyF6,
	"F7":         KeyF7,
	"F8":         KeyF8,
	"F9":         KeyF9,
	" ":          KeySpace,
	"+":          KeyPlus,
	"-":          KeyMinus,
}

func TranslateKey(id string) (Keycode, bool) {
	k, ok := platformKeys[id]
	return k, ok
}

type MouseButton int

const (
	MousePrimary MouseButton = iota
	MouseSecondary
)

func (b MouseButton) String() string {
	switch b {
	case MousePrimary:
		return "Primary"
	case MouseSecondary:
		return "Secondary"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

// TranslateMouseButton accepts platform button ids 0 (main) and 2
// (secondary). The middle button and extra buttons are filtered out.
func TranslateMouseButton(id int) (MouseButton, bool) {
	switch id {
	case 0:
		return MousePrimary, true
	case 2:
		return MouseSecondary, true
	default:
		return 0, false
	}
}

type LogicalPoint struct {
	X, Y float64
}

type SurfaceSize struct {
	Width, Height float64
}

// RescalePoint maps a position on the presented surface into the core's
// logical pixel space.
func RescalePoint(rawX, rawY float64, surface, logical SurfaceSize) LogicalPoint {
	return LogicalPoint{
		X: rawX / surface.Width * logical.Width,
		Y: rawY / surface.Height * logical.Height,
	}
}
