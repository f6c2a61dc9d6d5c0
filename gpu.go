package canvas

import "github.com/rajveermalviya/go-webgpu/wgpu"

// SurfaceConfig describes how the window surface is configured: what the
// acquired textures are used for, their pixel format and size, and how
// frames are presented. Width and Height are always positive while a
// surface is configured; a resize to zero in either dimension is ignored
// rather than applied.
type SurfaceConfig struct {
	Usage       wgpu.TextureUsage
	Format      wgpu.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
}

// surfaceBackend owns the platform GPU objects behind a gpuContext: the
// instance, surface, adapter, device, queue and swapchain. The concrete
// implementation is wgpuBackend; tests substitute a mock so the context
// logic (resize ordering, render failure policy) runs without a GPU.
type surfaceBackend interface {
	// Configure (re)configures the swapchain from cfg. Callers must not
	// pass zero dimensions. Failures are reported through the package
	// error taxonomy.
	Configure(cfg SurfaceConfig) error

	// RenderFrame acquires the next presentable texture, records one
	// command buffer clearing it to the given color, submits it and
	// presents. Exactly one submission and one presentation per
	// successful call. Acquisition failures are classified through the
	// error taxonomy.
	RenderFrame(clear Color) error

	// Release frees the swapchain, device, queue, adapter and surface.
	// The backend must not be used afterwards.
	Release()
}

// gpuContext owns and mediates the GPU-side resources bound to one window.
// It is created once at startup, reconfigured on resize and used every
// frame. The device and queue are never renegotiated after creation.
type gpuContext struct {
	backend surfaceBackend
	config  SurfaceConfig
	handler EventHandler
	clear   Color
}

func newGPUContext(backend surfaceBackend, config SurfaceConfig, handler EventHandler, clear Color) *gpuContext {
	return &gpuContext{
		backend: backend,
		config:  config,
		handler: handler,
		clear:   clear,
	}
}

// size returns the configured surface dimensions in physical pixels.
func (g *gpuContext) size() (width, height uint32) {
	return g.config.Width, g.config.Height
}

// resize updates the surface configuration and reconfigures the surface
// against the device, then notifies the handler. The ordering is an
// invariant: the handler must never observe a resize before the surface
// actually supports the new dimensions, so the notification is skipped
// when reconfiguration fails.
//
// A resize with either dimension zero (window minimized) is ignored.
func (g *gpuContext) resize(width, height uint32) {
	if width == 0 || height == 0 {
		Logger().Debug("canvas: ignoring zero-sized resize", "width", width, "height", height)
		return
	}

	g.config.Width = width
	g.config.Height = height
	if err := g.backend.Configure(g.config); err != nil {
		// The stored size keeps tracking the window, not the swapchain,
		// so a later forced reconfiguration retries at the current
		// dimensions.
		Logger().Warn("canvas: surface reconfiguration failed", "error", err)
		return
	}

	g.handler.Resize(width, height)
}

// render performs one render cycle: acquire, clear, submit, present, then
// the handler's NextFrame callback. The clear is a placeholder for frame
// content supplied by collaborators; the contract is one submission and
// one presentation per successful call.
func (g *gpuContext) render() error {
	if err := g.backend.RenderFrame(g.clear); err != nil {
		return err
	}
	g.handler.NextFrame()
	return nil
}

// release frees all GPU resources. The surface is released here, before
// the window it was created from is destroyed.
func (g *gpuContext) release() {
	g.backend.Release()
}
