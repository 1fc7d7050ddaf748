package vulkan

import (
	"github.com/google/uuid"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

// VulkanFramebuffer owns a native framebuffer. The render pass and the image
// views it was built from are borrowed and must outlive it.
type VulkanFramebuffer struct {
	ID            uuid.UUID
	Handle        vk.Framebuffer
	Size          FramebufferSize
	Renderpass    *VulkanRenderpass
	RenderTargets RenderTargets

	attachments []vk.ImageView
	device      DeviceFn
}

// FramebufferCreate builds a framebuffer for renderTargets. The render pass
// must have been created from renderTargets.RenderPassFormat() or a format
// compatible with it.
func FramebufferCreate(device DeviceFn, renderpass *VulkanRenderpass, renderTargets RenderTargets) (*VulkanFramebuffer, error) {
	size := renderTargets.ImageSize()
	views := renderTargets.Attachments()

	framebufferCreateInfo := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderpass.Handle,
		AttachmentCount: uint32(len(views)),
		PAttachments:    views,
		Width:           size.Width,
		Height:          size.Height,
		Layers:          size.Layers,
	}

	pFramebuffer, res := device.CreateFramebuffer(&framebufferCreateInfo)
	if res != vk.Success {
		err := &CreationError{Object: "framebuffer", Result: res}
		core.LogError("%s (attachments=%d, size=%s)", err, len(views), size)
		return nil, err
	}

	outFramebuffer := &VulkanFramebuffer{
		ID:            uuid.New(),
		Handle:        pFramebuffer,
		Size:          size,
		Renderpass:    renderpass,
		RenderTargets: renderTargets,
		attachments:   views,
		device:        device,
	}
	core.LogDebug("framebuffer %s created (attachments=%d, size=%s)", outFramebuffer.ID, len(views), size)
	return outFramebuffer, nil
}

// Attachments returns the image views in the order they were bound.
func (vfb *VulkanFramebuffer) Attachments() []vk.ImageView {
	return vfb.attachments
}

// Destroy releases the native framebuffer. Calling it more than once is a no-op.
func (vfb *VulkanFramebuffer) Destroy() {
	if vfb.Handle == nil {
		return
	}
	vfb.device.DestroyFramebuffer(vfb.Handle)
	vfb.Handle = nil
	core.LogDebug("framebuffer %s destroyed", vfb.ID)
}
