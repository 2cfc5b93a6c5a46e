package grove

import "github.com/hajimehoshi/ebiten/v2"

// WindowEvent is the payload kind for tree-level notifications. Redraw,
// Restyle, Relayout and SetCursor are also inspected by the EventManager
// itself before routing.
type WindowEvent uint8

const (
	WindowRedraw          WindowEvent = iota // repaint requested; Flush reports it
	WindowRestyle                            // styles need recomputing
	WindowRelayout                           // layout needs recomputing; hover is re-resolved
	WindowMouseOver                          // pointer is now inside the entity's hit area
	WindowMouseOut                           // pointer left the entity's hit area
	WindowMouseEnter                         // entity became the hovered entity
	WindowMouseLeave                         // entity stopped being the hovered entity
	WindowMouseCaptureEvent                  // entity acquired input capture
	WindowMouseCaptureOutEvent               // entity lost input capture
	WindowFocusIn                            // entity gained keyboard focus
	WindowFocusOut                           // entity lost keyboard focus
)

var windowEventNames = [...]string{
	WindowRedraw:               "redraw",
	WindowRestyle:              "restyle",
	WindowRelayout:             "relayout",
	WindowMouseOver:            "mouse-over",
	WindowMouseOut:             "mouse-out",
	WindowMouseEnter:           "mouse-enter",
	WindowMouseLeave:           "mouse-leave",
	WindowMouseCaptureEvent:    "mouse-capture",
	WindowMouseCaptureOutEvent: "mouse-capture-out",
	WindowFocusIn:              "focus-in",
	WindowFocusOut:             "focus-out",
}

func (w WindowEvent) String() string {
	if int(w) < len(windowEventNames) {
		return windowEventNames[w]
	}
	return "window-event(?)"
}

// SetCursor asks the host to change the pointer shape.
type SetCursor struct {
	Icon CursorIcon
}

// MouseMove carries the new pointer position in screen coordinates.
type MouseMove struct {
	X, Y float64
}

// MouseDown is sent when a mouse button is pressed.
type MouseDown struct {
	Button MouseButton
	X, Y   float64
	Mods   KeyModifiers
}

// MouseUp is sent when a mouse button is released.
type MouseUp struct {
	Button MouseButton
	X, Y   float64
	Mods   KeyModifiers
}

// MouseScroll carries wheel deltas.
type MouseScroll struct {
	X, Y float64
}

// KeyDown is sent to the focused entity when a key is pressed.
type KeyDown struct {
	Key  ebiten.Key
	Mods KeyModifiers
}

// KeyUp is sent to the focused entity when a key is released.
type KeyUp struct {
	Key  ebiten.Key
	Mods KeyModifiers
}

// CharInput carries one typed character for the focused entity.
type CharInput struct {
	Rune rune
}
