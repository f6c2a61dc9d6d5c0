package canvas

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"
	wgpuglfw "github.com/rajveermalviya/go-webgpu/wgpuext/glfw"
)

// wgpuBackend implements surfaceBackend on wgpu-native.
type wgpuBackend struct {
	instance  *wgpu.Instance
	surface   *wgpu.Surface
	adapter   *wgpu.Adapter
	device    *wgpu.Device
	queue     *wgpu.Queue
	swapchain *wgpu.SwapChain
}

// newWGPUBackend negotiates a backend instance, a surface bound to the
// window, a compatible adapter and a device/queue pair with default
// features and limits, then configures the swapchain at the window's
// current framebuffer size. The window must stay alive for at least as
// long as the returned backend: the surface is created from it.
func newWGPUBackend(win *glfw.Window, mode PresentMode) (*wgpuBackend, SurfaceConfig, error) {
	b := &wgpuBackend{}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	if b.surface == nil {
		b.Release()
		return nil, SurfaceConfig{}, newError(KindGraphicsAPI, "create surface for window")
	}

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: b.surface,
	})
	if err != nil {
		b.Release()
		return nil, SurfaceConfig{}, wrapError(KindGraphicsAPI, err, "no compatible adapter")
	}
	b.adapter = adapter
	logAdapterInfo(adapter)

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		b.Release()
		return nil, SurfaceConfig{}, wrapError(KindGraphicsAPI, err, "request device")
	}
	b.device = device
	b.queue = device.GetQueue()

	caps := b.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		b.Release()
		return nil, SurfaceConfig{}, newError(KindGraphicsAPI, "surface reports no texture formats")
	}

	width, height := win.GetFramebufferSize()
	config := SurfaceConfig{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      preferredFormat(caps.Formats),
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode(mode),
		AlphaMode:   alphaMode(caps.AlphaModes),
	}

	if err := b.Configure(config); err != nil {
		b.Release()
		return nil, SurfaceConfig{}, err
	}

	Logger().Info("canvas: surface configured",
		"format", config.Format,
		"width", config.Width,
		"height", config.Height,
		"present_mode", config.PresentMode,
	)
	return b, config, nil
}

// preferredFormat picks a format with gamma-correct (sRGB) output when the
// surface supports one, falling back to the first available format.
func preferredFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		switch f {
		case wgpu.TextureFormat_BGRA8UnormSrgb, wgpu.TextureFormat_RGBA8UnormSrgb:
			return f
		}
	}
	return formats[0]
}

func presentMode(mode PresentMode) wgpu.PresentMode {
	if mode == PresentModeImmediate {
		return wgpu.PresentMode_Immediate
	}
	return wgpu.PresentMode_Fifo
}

func alphaMode(modes []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	if len(modes) == 0 {
		return wgpu.CompositeAlphaMode_Auto
	}
	return modes[0]
}

// logAdapterInfo logs the negotiated GPU adapter.
func logAdapterInfo(adapter *wgpu.Adapter) {
	props := adapter.GetProperties()
	Logger().Info("canvas: GPU adapter selected",
		"name", props.Name,
		"vendor", props.VendorName,
		"type", props.AdapterType,
		"backend", props.BackendType,
		"driver", props.DriverDescription,
	)
}

// Configure (re)creates the swapchain from cfg. The previous swapchain,
// if any, is released first; wgpu requires the old swapchain to be gone
// before the surface is reconfigured.
func (b *wgpuBackend) Configure(cfg SurfaceConfig) error {
	if b.swapchain != nil {
		b.swapchain.Release()
		b.swapchain = nil
	}

	sc, err := b.device.CreateSwapChain(b.surface, &wgpu.SwapChainDescriptor{
		Usage:       cfg.Usage,
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	if err != nil {
		return classifySurface(err)
	}
	b.swapchain = sc
	return nil
}

// RenderFrame acquires the next surface texture, clears it and presents.
func (b *wgpuBackend) RenderFrame(clear Color) error {
	if b.swapchain == nil {
		// A reconfiguration failed after the previous swapchain was
		// released. Report a lost context so the caller reconfigures
		// before the next acquisition.
		return newError(KindContextLost, "swapchain not configured")
	}

	view, err := b.swapchain.GetCurrentTextureView()
	if err != nil {
		return classifySurface(err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return wrapError(KindGraphicsAPI, err, "create command encoder")
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  wgpu.LoadOp_Clear,
			StoreOp: wgpu.StoreOp_Store,
			ClearValue: wgpu.Color{
				R: clear.R,
				G: clear.G,
				B: clear.B,
				A: clear.A,
			},
		}},
	})
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return wrapError(KindGraphicsAPI, err, "finish command buffer")
	}
	defer cmd.Release()

	b.queue.Submit(cmd)
	b.swapchain.Present()
	return nil
}

// Release frees all GPU objects in reverse creation order.
func (b *wgpuBackend) Release() {
	if b.swapchain != nil {
		b.swapchain.Release()
		b.swapchain = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

var _ surfaceBackend = (*wgpuBackend)(nil)
