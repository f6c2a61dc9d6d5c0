package canvas

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling and window creation must stay on the main
	// OS thread.
	runtime.LockOSThread()
}

// platformWindow is the slice of the OS window the event loop needs.
// The concrete implementation wraps *glfw.Window; tests substitute a fake
// to drive the loop without a display.
type platformWindow interface {
	// ShouldClose reports whether a close was requested for the window.
	ShouldClose() bool

	// Destroy releases the OS window. The GPU surface created from the
	// window must already be gone.
	Destroy()
}

// glfwWindow adapts *glfw.Window to platformWindow.
type glfwWindow struct {
	win *glfw.Window
}

func (w *glfwWindow) ShouldClose() bool { return w.win.ShouldClose() }
func (w *glfwWindow) Destroy()          { w.win.Destroy() }

// createWindow initializes the windowing layer and creates the OS window.
// ClientAPI is set to NoAPI: the surface comes from WebGPU, not from an
// OpenGL context owned by the window.
func createWindow(opts Options) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, wrapError(KindGraphicsAPI, err, "initialize windowing layer")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, wrapError(KindGraphicsAPI, err, "create window")
	}

	sx, sy := win.GetContentScale()
	Logger().Info("canvas: window created",
		"width", opts.Width,
		"height", opts.Height,
		"title", opts.Title,
		"scale_x", sx,
		"scale_y", sy,
	)
	return win, nil
}

// installCallbacks wires window events to the canvas dispatch methods.
// Cursor positions arrive in screen coordinates, which the windowing layer
// already expresses in logical (scale-factor adjusted) units; resize events
// use the framebuffer size, which is physical pixels.
func (c *Canvas) installCallbacks(win *glfw.Window) {
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		c.onResize(uint32(width), uint32(height))
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		c.onCursorMove(x, y)
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		c.onMouseButton(button, action == glfw.Press)
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		// Repeat arrives as additional pressed events; only Release
		// reports pressed=false.
		c.onKey(key, action != glfw.Release)
	})
}
