package canvas

import "github.com/go-gl/glfw/v3.3/glfw"

// Key identifies a keyboard key. It is re-exported from the windowing layer
// so handler implementations do not need to import glfw directly.
type Key = glfw.Key

// Button identifies a mouse button.
type Button = glfw.MouseButton

// Common mouse buttons.
const (
	ButtonLeft   Button = glfw.MouseButtonLeft
	ButtonRight  Button = glfw.MouseButtonRight
	ButtonMiddle Button = glfw.MouseButtonMiddle
)

// EventHandler receives lifecycle and input callbacks from a Canvas.
//
// The canvas holds exactly one handler instance, selected at construction
// time, for its entire lifetime. All callbacks are invoked from the single
// event-loop thread, never concurrently, so implementations need no
// synchronization for state touched only from callbacks.
type EventHandler interface {
	// Setup is called exactly once, after the GPU context is ready and
	// before the first frame. width and height are the surface dimensions
	// in physical pixels. Returning an error aborts startup; the canvas
	// will not render.
	Setup(width, height uint32) error

	// Stop is called on shutdown. It is invoked even when shutdown is
	// triggered by a fatal error, so implementations can always release
	// their resources here.
	Stop()

	// NextFrame is called once per completed render cycle, after the
	// frame has been presented.
	NextFrame()

	// Resize reports the new surface dimensions in physical pixels.
	// It is called after the surface has already been reconfigured, so
	// the new dimensions are safe to render against immediately.
	Resize(width, height uint32)

	// CursorMove reports the cursor position in logical (scale-factor
	// adjusted) coordinates.
	CursorMove(x, y float64)

	// MouseButton reports a button transition. x and y are the most
	// recently observed cursor position; the OS delivers no position
	// with the button event itself, so the coordinates may lag the
	// physical pointer.
	MouseButton(x, y float64, button Button, pressed bool)

	// KeyboardEvent reports a key transition. Key repeat is forwarded
	// as additional pressed events; no suppression is performed.
	KeyboardEvent(key Key, pressed bool)
}
