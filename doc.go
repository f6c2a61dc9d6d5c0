// Package canvas manages a single on-screen rendering surface bound to an
// operating-system window.
//
// # Overview
//
// canvas owns exactly one window and one GPU surface for the process
// lifetime. It creates the window, negotiates a WebGPU device/queue/surface
// triple compatible with it, reconfigures the surface on resize, drives a
// per-frame render cycle and dispatches input events to a user-supplied
// [EventHandler]. The frame content itself is a placeholder (a clear to a
// background color); everything drawn inside a frame is the business of the
// embedding application.
//
// # Quick Start
//
//	type handler struct{}
//
//	func (handler) Setup(width, height uint32) error { return nil }
//	func (handler) Stop()                            {}
//	func (handler) NextFrame()                       {}
//	func (handler) Resize(width, height uint32)      {}
//	func (handler) CursorMove(x, y float64)          {}
//	func (handler) MouseButton(x, y float64, button canvas.Button, pressed bool) {}
//	func (handler) KeyboardEvent(key canvas.Key, pressed bool)                   {}
//
//	func main() {
//	    opts := canvas.Options{Width: 800, Height: 600, Title: "Hello World"}
//	    if err := canvas.Run(opts, handler{}); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Event Loop
//
// Run drives a single-threaded, cooperative event loop: each iteration polls
// pending window events (which dispatch to the handler) and then performs one
// render cycle. The loop never blocks waiting for events; when idle it
// immediately renders again, so the frame rate is bounded only by the
// surface's present mode (VSync by default).
//
// Because there is exactly one thread of control, handler callbacks are never
// invoked concurrently and no locking is required around handler state.
//
// # Error Recovery
//
// Steady-state render failures are triaged by kind: a lost surface is healed
// by reconfiguring it at the last known size, out-of-memory terminates the
// loop, and anything else (an outdated surface, a dropped frame) is logged
// and skipped so the loop can self-correct on the next frame. See [Kind].
//
// # Logging
//
// canvas produces no log output by default. Call [SetLogger] to enable it.
package canvas
