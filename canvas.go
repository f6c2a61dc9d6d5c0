package canvas

import "github.com/go-gl/glfw/v3.3/glfw"

// Canvas owns the OS window, the GPU context and the event handler, and
// drives the single event loop that connects them. A process holds at most
// one Canvas; it is not safe for concurrent use and must stay on the
// goroutine that created it (the main OS thread).
type Canvas struct {
	win     platformWindow
	poll    func()
	gpu     *gpuContext
	handler EventHandler

	// Last known cursor position in logical coordinates. Mutated only
	// by cursor-move events; mouse-button events carry no position of
	// their own and reuse these.
	cursorX float64
	cursorY float64

	// terminate tears down the windowing layer after the window is gone.
	terminate func()

	// fatal is the error that ended the loop, if any.
	fatal error

	stopped bool
}

// New creates the window, negotiates a GPU device/queue/surface triple
// compatible with it, and invokes the handler's Setup callback exactly
// once. Any failure aborts startup: the error is returned, resources are
// released and the handler's Stop callback has already been invoked.
//
// New must be called from the main goroutine.
func New(opts Options, handler EventHandler) (*Canvas, error) {
	if handler == nil {
		return nil, newError(KindInternal, "nil event handler")
	}
	if err := opts.validate(); err != nil {
		handler.Stop()
		return nil, err
	}

	win, err := createWindow(opts)
	if err != nil {
		handler.Stop()
		return nil, err
	}

	backend, config, err := newWGPUBackend(win, opts.PresentMode)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		handler.Stop()
		return nil, err
	}

	c := &Canvas{
		win:       &glfwWindow{win: win},
		poll:      glfw.PollEvents,
		gpu:       newGPUContext(backend, config, handler, opts.clearColor()),
		handler:   handler,
		terminate: glfw.Terminate,
	}
	c.installCallbacks(win)

	if err := c.setup(config.Width, config.Height); err != nil {
		return nil, err
	}
	return c, nil
}

// setup invokes the handler's Setup callback with the surface dimensions.
// A failure aborts startup: everything created so far is released, with
// the usual Stop-before-teardown ordering.
func (c *Canvas) setup(width, height uint32) error {
	if err := c.handler.Setup(width, height); err != nil {
		err = wrapError(KindInternal, err, "handler setup")
		Logger().Error("canvas: setup failed", "error", err)
		c.Close()
		return err
	}
	return nil
}

// Run drives the event loop until the window is closed or a fatal error
// occurs. Each iteration polls pending window events, which dispatch to
// the handler, and then performs one render cycle; the loop never waits
// for events, so rendering is continuous and bounded only by the surface's
// present mode.
//
// Run returns nil on a normal close and the fatal error otherwise. The
// caller still owns the Canvas and must Close it.
func (c *Canvas) Run() error {
	for !c.win.ShouldClose() {
		c.poll()
		if !c.redraw() {
			break
		}
	}
	return c.fatal
}

// Close transitions the canvas to its terminated state: the handler's Stop
// callback fires exactly once, then the GPU context is released before the
// window it was created from. Close is idempotent.
func (c *Canvas) Close() {
	if !c.stopped {
		c.stopped = true
		c.handler.Stop()
	}
	if c.gpu != nil {
		c.gpu.release()
		c.gpu = nil
	}
	if c.win != nil {
		c.win.Destroy()
		c.win = nil
	}
	if c.terminate != nil {
		c.terminate()
		c.terminate = nil
	}
}

// Run creates a canvas from opts, drives its event loop to completion and
// releases everything. This is the whole lifecycle in one call:
//
//	err := canvas.Run(canvas.Options{Width: 800, Height: 600, Title: "Hello World"}, handler)
func Run(opts Options, handler EventHandler) error {
	c, err := New(opts, handler)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Run()
}

// redraw performs one render cycle and applies the failure policy.
// It reports whether the loop should continue.
func (c *Canvas) redraw() bool {
	err := c.gpu.render()
	if err == nil {
		return true
	}

	switch KindOf(err) {
	case KindContextLost:
		// Self-healing: force a reconfiguration at the last known size.
		width, height := c.gpu.size()
		Logger().Warn("canvas: surface lost, reconfiguring", "error", err, "width", width, "height", height)
		c.gpu.resize(width, height)
		return true
	case KindOutOfMemory:
		Logger().Error("canvas: out of memory, stopping event loop", "error", err)
		c.fatal = err
		return false
	default:
		// Transient (outdated surface, acquisition timeout): skip the
		// frame and let the next iteration self-correct.
		Logger().Warn("canvas: frame dropped", "error", err)
		return true
	}
}

// onResize applies a window resize to the GPU context. The context ignores
// zero dimensions and notifies the handler only after the surface has been
// reconfigured.
func (c *Canvas) onResize(width, height uint32) {
	c.gpu.resize(width, height)
}

// onCursorMove caches the position and forwards it to the handler.
func (c *Canvas) onCursorMove(x, y float64) {
	c.cursorX = x
	c.cursorY = y
	c.handler.CursorMove(x, y)
}

// onMouseButton forwards a button transition at the cached cursor
// position, (0, 0) if the cursor has never moved.
func (c *Canvas) onMouseButton(button Button, pressed bool) {
	c.handler.MouseButton(c.cursorX, c.cursorY, button, pressed)
}

// onKey forwards a key transition.
func (c *Canvas) onKey(key Key, pressed bool) {
	c.handler.KeyboardEvent(key, pressed)
}
