package vulkan

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

func TestRenderpassCreateAttachmentOrder(t *testing.T) {
	d := newStubDevice()
	depth := d.depthImage(512, 512)
	color0 := d.image(testImage{format: vk.FormatR8g8b8a8Unorm, width: 512, height: 512, layout: vk.ImageLayoutColorAttachmentOptimal})
	color2 := d.image(testImage{format: vk.FormatR16g16b16a16Sfloat, width: 512, height: 512, layout: vk.ImageLayoutGeneral})

	var rt RenderTargets
	rt.SetDepthTarget(depth, vk.ImageLayoutDepthStencilAttachmentOptimal)
	if err := rt.SetColorTarget(0, color0, vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}
	if err := rt.SetColorTarget(2, color2, vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}

	rp, err := RenderpassCreate(d, rt.RenderPassFormat())
	if err != nil {
		t.Fatal(err)
	}
	if rp.AttachmentCount != uint32(len(rt.Attachments())) {
		t.Fatalf("render pass declares %d attachments, render targets bind %d", rp.AttachmentCount, len(rt.Attachments()))
	}

	info := d.renderPassInfo
	wantFormats := []vk.Format{vk.FormatD32Sfloat, vk.FormatR8g8b8a8Unorm, vk.FormatR16g16b16a16Sfloat}
	if len(info.PAttachments) != len(wantFormats) {
		t.Fatalf("got %d attachment descriptions, want %d", len(info.PAttachments), len(wantFormats))
	}
	for i, want := range wantFormats {
		if got := info.PAttachments[i].Format; got != want {
			t.Errorf("attachment %d format = %d, want %d", i, got, want)
		}
	}
	if got := info.PAttachments[2].InitialLayout; got != vk.ImageLayoutGeneral {
		t.Errorf("attachment 2 initial layout = %d, want general", got)
	}

	subpass := info.PSubpasses[0]
	if subpass.PDepthStencilAttachment == nil || subpass.PDepthStencilAttachment.Attachment != 0 {
		t.Error("depth reference does not point at attachment 0")
	}
	wantRefs := []uint32{1, attachmentUnused, 2}
	if int(subpass.ColorAttachmentCount) != len(wantRefs) {
		t.Fatalf("got %d color references, want %d", subpass.ColorAttachmentCount, len(wantRefs))
	}
	for i, want := range wantRefs {
		if got := subpass.PColorAttachments[i].Attachment; got != want {
			t.Errorf("color reference %d = %d, want %d", i, got, want)
		}
	}

	fb, err := FramebufferCreate(d, rp, rt)
	if err != nil {
		t.Fatalf("framebuffer for the same render targets: %v", err)
	}
	fb.Destroy()
	rp.Destroy()
	rp.Destroy()
	if d.destroyedRenderPasses != 1 {
		t.Errorf("native destroy called %d times, want 1", d.destroyedRenderPasses)
	}
}

func TestRenderpassCreateColorOnly(t *testing.T) {
	d := newStubDevice()
	var rt RenderTargets
	if err := rt.SetColorTarget(0, d.colorImage(32, 32), vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}

	if _, err := RenderpassCreate(d, rt.RenderPassFormat()); err != nil {
		t.Fatal(err)
	}
	subpass := d.renderPassInfo.PSubpasses[0]
	if subpass.PDepthStencilAttachment != nil {
		t.Error("color only render pass has a depth reference")
	}
	if subpass.ColorAttachmentCount != 1 || subpass.PColorAttachments[0].Attachment != 0 {
		t.Error("color slot 0 is not attachment 0")
	}
}

func TestRenderpassCreateFailure(t *testing.T) {
	d := newStubDevice()
	d.renderPassResult = vk.ErrorOutOfHostMemory

	var rt RenderTargets
	if err := rt.SetColorTarget(0, d.colorImage(32, 32), vk.ImageLayoutColorAttachmentOptimal); err != nil {
		t.Fatal(err)
	}

	rp, err := RenderpassCreate(d, rt.RenderPassFormat())
	if rp != nil {
		t.Error("render pass returned alongside the error")
	}
	if !errors.Is(err, core.ErrObjectCreation) {
		t.Fatalf("got %v, want ErrObjectCreation", err)
	}
	if err.Error() != "failed to create render pass: VK_ERROR_OUT_OF_HOST_MEMORY" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
