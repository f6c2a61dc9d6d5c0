// Command hello opens a canvas window and logs the events it receives.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/canvas"
)

// handler logs every callback it receives. It is the smallest useful
// EventHandler: all frame content is the canvas's background clear.
type handler struct {
	log    *slog.Logger
	frames uint64
}

func (h *handler) Setup(width, height uint32) error {
	h.log.Info("setup", "width", width, "height", height)
	return nil
}

func (h *handler) Stop() {
	h.log.Info("stop", "frames", h.frames)
}

func (h *handler) NextFrame() {
	h.frames++
}

func (h *handler) Resize(width, height uint32) {
	h.log.Debug("resize", "width", width, "height", height)
}

func (h *handler) CursorMove(x, y float64) {
	h.log.Debug("cursor", "x", x, "y", y)
}

func (h *handler) MouseButton(x, y float64, button canvas.Button, pressed bool) {
	h.log.Debug("mouse button", "x", x, "y", y, "button", button, "pressed", pressed)
}

func (h *handler) KeyboardEvent(key canvas.Key, pressed bool) {
	h.log.Debug("key", "key", key, "pressed", pressed)
}

func main() {
	var (
		width    = flag.Int("width", 800, "window width")
		height   = flag.Int("height", 600, "window height")
		title    = flag.String("title", "Hello World", "window title")
		uncapped = flag.Bool("uncapped", false, "present immediately instead of waiting for vsync")
		verbose  = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	canvas.SetLogger(log)

	opts := canvas.Options{
		Width:  *width,
		Height: *height,
		Title:  *title,
	}
	if *uncapped {
		opts.PresentMode = canvas.PresentModeImmediate
	}

	if err := canvas.Run(opts, &handler{log: log}); err != nil {
		log.Error("canvas failed", "error", err)
		os.Exit(1)
	}
}
