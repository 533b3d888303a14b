package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwKeyNames names the non-printable keys with the identifiers the
// input translator expects. Printable keys arrive through the char
// callback as the typed text instead.
var glfwKeyNames = map[glfw.Key]string{
	glfw.KeyEscape:    "Escape",
	glfw.KeyEnter:     "Enter",
	glfw.KeyKPEnter:   "Enter",
	glfw.KeyTab:       "Tab",
	glfw.KeyBackspace: "Backspace",
	glfw.KeyInsert:    "Insert",
	glfw.KeyDelete:    "Delete",
	glfw.KeyRight:     "ArrowRight",
	glfw.KeyLeft:      "ArrowLeft",
	glfw.KeyDown:      "ArrowDown",
	glfw.KeyUp:        "ArrowUp",
	glfw.KeyPageUp:    "PageUp",
	glfw.KeyPageDown:  "PageDown",
	glfw.KeyHome:      "Home",
	glfw.KeyEnd:       "End",
	glfw.KeyF1:        "F1",
	glfw.KeyF2:        "F2",
	glfw.KeyF3:        "F3",
	glfw.KeyF4:        "F4",
	glfw.KeyF5:        "F5",
	glfw.KeyF6:        "F6",
	glfw.KeyF7:        "F7",
	glfw.KeyF8:        "F8",
	glfw.KeyF9:        "F9",
	glfw.KeyF10:       "F10",
	glfw.KeyF11:       "F11",
	glfw.KeyF12:       "F12",
}

func glfwKeyIdentifier(key glfw.Key) (string, bool) {
	name, ok := glfwKeyNames[key]
	return name, ok
}

// glfwButtonIdentifier renumbers glfw buttons the way pointer events
// number them: main 0, middle 1, secondary 2.
func glfwButtonIdentifier(button glfw.MouseButton) int {
	switch button {
	case glfw.MouseButtonLeft:
		return 0
	case glfw.MouseButtonMiddle:
		return 1
	case glfw.MouseButtonRight:
		return 2
	default:
		return int(button)
	}
}
