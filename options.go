package canvas

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a construction option or resize
// carries a non-positive dimension.
var ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

// PresentMode controls how rendered frames are presented to the display.
type PresentMode uint8

const (
	// PresentModeVSync waits for the next vertical blank before
	// presenting, capping the frame rate to the monitor's refresh rate.
	// This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeImmediate presents frames as soon as they are rendered.
	// Lowest latency, may tear.
	PresentModeImmediate
)

// Color is a normalized RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// DefaultClearColor is the background the surface is cleared to each frame
// unless [Options.ClearColor] overrides it.
var DefaultClearColor = Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}

// Options configure the canvas window and surface.
type Options struct {
	// Width and Height are the initial window size in logical pixels.
	// Both must be positive.
	Width  int
	Height int

	// Title is the window title.
	Title string

	// PresentMode selects the presentation policy. Zero value is VSync.
	PresentMode PresentMode

	// ClearColor is the per-frame background. The zero value selects
	// DefaultClearColor.
	ClearColor *Color
}

// validate rejects configurations the window or surface cannot represent.
// Zero or negative dimensions are a configuration error, not something to
// clamp silently.
func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, o.Width, o.Height)
	}
	return nil
}

// clearColor returns the effective background color.
func (o Options) clearColor() Color {
	if o.ClearColor != nil {
		return *o.ClearColor
	}
	return DefaultClearColor
}
