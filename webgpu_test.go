package canvas

import "testing"

func TestRenderFrameWithoutSwapchain(t *testing.T) {
	// A failed reconfiguration releases the previous swapchain before the
	// replacement exists. Rendering in that state must surface a
	// classified, recoverable error, not dereference a nil swapchain.
	b := &wgpuBackend{}

	err := b.RenderFrame(DefaultClearColor)
	if err == nil {
		t.Fatal("RenderFrame() on unconfigured backend = nil, want error")
	}
	if !IsKind(err, KindContextLost) {
		t.Errorf("RenderFrame() = %v, want context-lost so the caller reconfigures", err)
	}
}
