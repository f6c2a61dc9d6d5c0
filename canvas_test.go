package canvas

import (
	"errors"
	"testing"
)

// fakeWindow implements platformWindow. It requests a close after a fixed
// number of event-loop iterations.
type fakeWindow struct {
	remaining int
	destroyed bool
	log       *callLog
}

func (w *fakeWindow) ShouldClose() bool {
	if w.remaining <= 0 {
		return true
	}
	w.remaining--
	return false
}

func (w *fakeWindow) Destroy() {
	w.destroyed = true
	if w.log != nil {
		w.log.add("destroy_window")
	}
}

// newTestCanvas wires a Canvas over test doubles, mirroring what New does
// minus the OS window and device negotiation.
func newTestCanvas(h *recordingHandler, b *mockBackend, width, height uint32) *Canvas {
	return &Canvas{
		win:     &fakeWindow{},
		poll:    func() {},
		gpu:     newTestContext(h, b, width, height),
		handler: h,
	}
}

func TestMouseButtonBeforeAnyCursorMove(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	c := newTestCanvas(h, &mockBackend{log: log}, 800, 600)

	c.onMouseButton(ButtonLeft, true)

	if len(h.buttons) != 1 {
		t.Fatalf("MouseButton called %d times, want 1", len(h.buttons))
	}
	got := h.buttons[0]
	if got.x != 0 || got.y != 0 {
		t.Errorf("button position = (%v, %v), want initial (0, 0)", got.x, got.y)
	}
}

func TestMouseButtonUsesCachedCursorPosition(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	c := newTestCanvas(h, &mockBackend{log: log}, 800, 600)

	c.onCursorMove(12.5, 7.0)
	c.onMouseButton(ButtonLeft, true)

	if len(h.buttons) != 1 {
		t.Fatalf("MouseButton called %d times, want 1", len(h.buttons))
	}
	got := h.buttons[0]
	if got.x != 12.5 || got.y != 7.0 || got.button != ButtonLeft || !got.pressed {
		t.Errorf("MouseButton = %+v, want (12.5, 7, left, pressed)", got)
	}

	// A release without an intervening move reuses the same position.
	c.onMouseButton(ButtonLeft, false)
	got = h.buttons[1]
	if got.x != 12.5 || got.y != 7.0 || got.pressed {
		t.Errorf("MouseButton = %+v, want cached (12.5, 7) released", got)
	}
}

func TestCursorMoveForwarded(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	c := newTestCanvas(h, &mockBackend{log: log}, 800, 600)

	c.onCursorMove(3.25, 4.5)
	c.onCursorMove(6.0, 8.0)

	if len(h.cursors) != 2 {
		t.Fatalf("CursorMove called %d times, want 2", len(h.cursors))
	}
	if h.cursors[1] != [2]float64{6.0, 8.0} {
		t.Errorf("CursorMove = %v, want (6, 8)", h.cursors[1])
	}
}

func TestKeyboardDispatch(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	c := newTestCanvas(h, &mockBackend{log: log}, 800, 600)

	c.onKey(Key(65), true)
	c.onKey(Key(65), false)

	if len(h.keys) != 2 {
		t.Fatalf("KeyboardEvent called %d times, want 2", len(h.keys))
	}
	if !h.keys[0].pressed || h.keys[1].pressed {
		t.Errorf("key transitions = %+v, want press then release", h.keys)
	}
}

func TestResizeEventEndToEnd(t *testing.T) {
	// Construct at 800x600, resize to 1024x768: the surface configuration
	// is updated and the handler notified exactly once, after the
	// configuration update.
	log := &callLog{}
	h := &recordingHandler{log: log}
	b := &mockBackend{log: log}
	c := newTestCanvas(h, b, 800, 600)

	c.onResize(1024, 768)

	if w, hh := c.gpu.size(); w != 1024 || hh != 768 {
		t.Errorf("surface configuration = %dx%d, want 1024x768", w, hh)
	}
	if len(h.resizes) != 1 || h.resizes[0] != [2]uint32{1024, 768} {
		t.Errorf("Resize calls = %v, want exactly one (1024, 768)", h.resizes)
	}
	if log.entries[0] != "configure(1024,768)" || log.entries[1] != "resize(1024,768)" {
		t.Errorf("ordering = %v, want configure before resize", log.entries)
	}
}

func TestZeroResizeEventEndToEnd(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	c := newTestCanvas(h, &mockBackend{log: log}, 800, 600)

	c.onResize(0, 600)

	if w, hh := c.gpu.size(); w != 800 || hh != 600 {
		t.Errorf("surface configuration = %dx%d, want unchanged 800x600", w, hh)
	}
	if len(h.resizes) != 0 {
		t.Errorf("Resize called %d times for zero-sized event, want 0", len(h.resizes))
	}
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	b := &mockBackend{log: log}
	c := newTestCanvas(h, b, 800, 600)
	c.win = &fakeWindow{remaining: 3}

	if err := c.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if h.frames != 3 {
		t.Errorf("NextFrame called %d times, want 3", h.frames)
	}
}

func TestSetupFailureAbortsStartup(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log, setupErr: errors.New("assets missing")}
	c := newTestCanvas(h, &mockBackend{log: log}, 800, 600)
	win := c.win.(*fakeWindow)
	win.log = log

	err := c.setup(800, 600)
	if !IsKind(err, KindInternal) {
		t.Fatalf("setup() = %v, want internal", err)
	}
	if len(h.setups) != 1 || h.setups[0] != [2]uint32{800, 600} {
		t.Errorf("Setup calls = %v, want exactly one (800, 600)", h.setups)
	}

	// The abort runs the full teardown: Stop fires, then the GPU context
	// is released before the window.
	want := []string{"setup(800,600)", "stop", "release", "destroy_window"}
	if len(log.entries) != len(want) {
		t.Fatalf("calls = %v, want %v", log.entries, want)
	}
	for i := range want {
		if log.entries[i] != want[i] {
			t.Fatalf("calls = %v, want %v", log.entries, want)
		}
	}
}

func TestContextLostTriggersOneReconfigure(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	lost := wrapError(KindContextLost, errors.New("Surface was lost"), "surface lost")
	b := &mockBackend{log: log, renderErrs: []error{lost}}
	c := newTestCanvas(h, b, 800, 600)
	c.win = &fakeWindow{remaining: 2}

	if err := c.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil (context loss is recoverable)", err)
	}

	// Exactly one forced resize at the last known size.
	if got := log.count("configure(800,600)"); got != 1 {
		t.Errorf("reconfigure count = %d, want 1 (entries: %v)", got, log.entries)
	}
	if len(h.resizes) != 1 || h.resizes[0] != [2]uint32{800, 600} {
		t.Errorf("Resize calls = %v, want exactly one (800, 600)", h.resizes)
	}

	// The loop continued: the second iteration rendered successfully.
	if got := log.count("render"); got != 2 {
		t.Errorf("render count = %d, want 2", got)
	}
}

func TestFailedReconfigureRecoversOnNextFrame(t *testing.T) {
	// A resize whose reconfiguration fails leaves the surface without a
	// swapchain. The next render reports a lost context; the loop must
	// reconfigure at the window's current size and keep running.
	log := &callLog{}
	h := &recordingHandler{log: log}
	b := &mockBackend{
		log:        log,
		configErrs: []error{newError(KindGraphicsAPI, "reconfigure failed")},
		renderErrs: []error{newError(KindContextLost, "swapchain not configured")},
	}
	c := newTestCanvas(h, b, 800, 600)
	c.win = &fakeWindow{remaining: 2}

	c.onResize(1024, 768)
	if len(h.resizes) != 0 {
		t.Fatalf("Resize called %d times after failed reconfigure, want 0", len(h.resizes))
	}

	if err := c.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil (loop must survive the failed reconfigure)", err)
	}

	// The forced reconfiguration retries at the window's size, not the
	// last successfully configured one.
	if got := log.count("configure(1024,768)"); got != 2 {
		t.Errorf("configure(1024,768) count = %d, want 2 (entries: %v)", got, log.entries)
	}
	if len(h.resizes) != 1 || h.resizes[0] != [2]uint32{1024, 768} {
		t.Errorf("Resize calls = %v, want exactly one (1024, 768)", h.resizes)
	}
	if got := log.count("render"); got != 2 {
		t.Errorf("render count = %d, want 2 (loop continues after recovery)", got)
	}
}

func TestOutOfMemoryTerminatesLoop(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	oom := newError(KindOutOfMemory, "gpu memory exhausted")
	b := &mockBackend{log: log, renderErrs: []error{oom}}
	c := newTestCanvas(h, b, 800, 600)
	c.win = &fakeWindow{remaining: 100}

	err := c.Run()
	if !IsKind(err, KindOutOfMemory) {
		t.Fatalf("Run() = %v, want out-of-memory", err)
	}
	if got := log.count("render"); got != 1 {
		t.Errorf("render count = %d, want 1 (loop must stop immediately)", got)
	}

	c.Close()
	if h.stops != 1 {
		t.Errorf("Stop called %d times, want exactly 1", h.stops)
	}
}

func TestTransientRenderErrorOnlyLogged(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	outdated := wrapError(KindGraphicsAPI, errors.New("Surface is outdated"), "surface acquisition failed")
	b := &mockBackend{log: log, renderErrs: []error{outdated}}
	c := newTestCanvas(h, b, 800, 600)
	c.win = &fakeWindow{remaining: 2}

	if err := c.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if len(h.resizes) != 0 {
		t.Errorf("Resize called %d times for transient error, want 0", len(h.resizes))
	}
	if got := log.count("render"); got != 2 {
		t.Errorf("render count = %d, want 2 (loop continues past transient error)", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	b := &mockBackend{log: log}
	c := newTestCanvas(h, b, 800, 600)
	win := c.win.(*fakeWindow)

	c.Close()
	c.Close()

	if h.stops != 1 {
		t.Errorf("Stop called %d times, want exactly 1", h.stops)
	}
	if got := log.count("release"); got != 1 {
		t.Errorf("backend released %d times, want 1", got)
	}
	if !win.destroyed {
		t.Error("window not destroyed on Close")
	}
}

func TestCloseReleasesSurfaceBeforeWindow(t *testing.T) {
	log := &callLog{}
	h := &recordingHandler{log: log}
	b := &mockBackend{log: log}
	c := newTestCanvas(h, b, 800, 600)
	c.win = &fakeWindow{log: log}

	c.Close()

	// The surface must not outlive the window: the GPU context is
	// released while the window is still alive.
	want := []string{"stop", "release", "destroy_window"}
	if len(log.entries) != len(want) {
		t.Fatalf("calls = %v, want %v", log.entries, want)
	}
	for i := range want {
		if log.entries[i] != want[i] {
			t.Fatalf("calls = %v, want %v", log.entries, want)
		}
	}
}
