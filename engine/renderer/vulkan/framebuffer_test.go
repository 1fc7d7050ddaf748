package vulkan

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

func TestFramebufferCreateSingleColorTarget(t *testing.T) {
	d := newStubDevice()
	color := d.image(testImage{
		format:  vk.FormatR8g8b8a8Srgb,
		width:   1920,
		height:  1080,
		layers:  4,
		samples: vk.SampleCount1Bit,
		layout:  vk.ImageLayoutColorAttachmentOptimal,
	})

	var rt RenderTargets
	if err := rt.SetColorTarget(0, color, vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}

	format := rt.RenderPassFormat()
	wantFormat := RenderTargetFormat{
		Format:        vk.FormatR8g8b8a8Srgb,
		InitialLayout: vk.ImageLayoutColorAttachmentOptimal,
		CurrentLayout: vk.ImageLayoutColorAttachmentOptimal,
		Layout:        vk.ImageLayoutColorAttachmentOptimal,
	}
	if format.Color[0] != wantFormat {
		t.Errorf("color[0] = %+v, want %+v", format.Color[0], wantFormat)
	}
	if format.SampleCount != vk.SampleCount1Bit {
		t.Errorf("sample count = %d, want %d", format.SampleCount, vk.SampleCount1Bit)
	}

	wantSize := FramebufferSize{Width: 1920, Height: 1080, Layers: 4}
	if size := rt.ImageSize(); size != wantSize {
		t.Errorf("ImageSize() = %s, want %s", size, wantSize)
	}
	if views := rt.Attachments(); len(views) != 1 || views[0] != color.View {
		t.Fatalf("Attachments() = %v, want the color view only", views)
	}

	rp, err := RenderpassCreate(d, format)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := FramebufferCreate(d, rp, rt)
	if err != nil {
		t.Fatal(err)
	}

	if fb.Handle == nil {
		t.Fatal("framebuffer has no handle")
	}
	if fb.Size != wantSize {
		t.Errorf("framebuffer size = %s, want %s", fb.Size, wantSize)
	}
	if fb.Renderpass != rp {
		t.Error("framebuffer does not reference its render pass")
	}
	if fb.RenderTargets != rt {
		t.Error("framebuffer does not keep its render targets")
	}

	info := d.framebufferInfo
	if info.RenderPass != rp.Handle {
		t.Error("create info does not reference the render pass")
	}
	if info.Width != 1920 || info.Height != 1080 || info.Layers != 4 {
		t.Errorf("create info extent = %dx%dx%d, want 1920x1080x4", info.Width, info.Height, info.Layers)
	}
	if info.AttachmentCount != 1 || info.PAttachments[0] != color.View {
		t.Errorf("create info attachments = %d, want the color view", info.AttachmentCount)
	}
}

func TestFramebufferCreateMismatchedRenderPass(t *testing.T) {
	d := newStubDevice()
	color := d.colorImage(256, 256)
	depth := d.depthImage(256, 256)

	var full RenderTargets
	full.SetDepthTarget(depth, vk.ImageLayoutDepthStencilAttachmentOptimal)
	if err := full.SetColorTarget(0, color, vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}
	rp, err := RenderpassCreate(d, full.RenderPassFormat())
	if err != nil {
		t.Fatal(err)
	}

	var colorOnly RenderTargets
	if err := colorOnly.SetColorTarget(0, color, vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}

	fb, err := FramebufferCreate(d, rp, colorOnly)
	if fb != nil {
		t.Error("a framebuffer was returned alongside the error")
	}
	if !errors.Is(err, core.ErrObjectCreation) {
		t.Fatalf("got %v, want ErrObjectCreation", err)
	}
	var creationErr *CreationError
	if !errors.As(err, &creationErr) {
		t.Fatalf("got %T, want *CreationError", err)
	}
	if creationErr.Result != vk.ErrorInitializationFailed {
		t.Errorf("result = %s, want VK_ERROR_INITIALIZATION_FAILED", VulkanResultString(creationErr.Result, false))
	}
	if d.createdFramebuffers != 0 {
		t.Errorf("%d framebuffers were created", d.createdFramebuffers)
	}
}

func TestFramebufferDestroyLeavesBorrowedObjects(t *testing.T) {
	d := newStubDevice()
	color := d.colorImage(800, 600)
	depth := d.depthImage(800, 600)

	var rt RenderTargets
	rt.SetDepthTarget(depth, vk.ImageLayoutDepthStencilAttachmentOptimal)
	if err := rt.SetColorTarget(1, color, vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}
	rp, err := RenderpassCreate(d, rt.RenderPassFormat())
	if err != nil {
		t.Fatal(err)
	}
	fb, err := FramebufferCreate(d, rp, rt)
	if err != nil {
		t.Fatal(err)
	}
	colorView, depthView := color.View, depth.View

	fb.Destroy()

	if fb.Handle != nil {
		t.Error("handle still set after Destroy")
	}
	if len(d.framebuffers) != 0 {
		t.Error("native framebuffer still alive")
	}
	if !d.liveRenderPass(rp) || d.destroyedRenderPasses != 0 {
		t.Error("render pass was destroyed with the framebuffer")
	}
	if color.View != colorView || depth.View != depthView {
		t.Error("image views were modified by Destroy")
	}

	// The borrowed objects are still usable for a new framebuffer.
	again, err := FramebufferCreate(d, rp, rt)
	if err != nil {
		t.Fatalf("recreating framebuffer: %v", err)
	}
	again.Destroy()
}

func TestFramebufferDestroyTwice(t *testing.T) {
	d := newStubDevice()
	var rt RenderTargets
	if err := rt.SetColorTarget(0, d.colorImage(64, 64), vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}
	rp, err := RenderpassCreate(d, rt.RenderPassFormat())
	if err != nil {
		t.Fatal(err)
	}
	fb, err := FramebufferCreate(d, rp, rt)
	if err != nil {
		t.Fatal(err)
	}

	fb.Destroy()
	fb.Destroy()

	if d.destroyedFramebuffers != 1 {
		t.Errorf("native destroy called %d times, want 1", d.destroyedFramebuffers)
	}
}
