package vulkan

import (
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/rendertargets/engine/core"
)

// RenderPassCache hands out one render pass per RenderPassFormat.
// It is not safe for concurrent use.
type RenderPassCache struct {
	device DeviceFn
	passes map[RenderPassFormat]*VulkanRenderpass
}

func NewRenderPassCache(device DeviceFn) *RenderPassCache {
	return &RenderPassCache{
		device: device,
		passes: make(map[RenderPassFormat]*VulkanRenderpass),
	}
}

// Get returns the render pass for format, creating it on first use.
func (c *RenderPassCache) Get(format RenderPassFormat) (*VulkanRenderpass, error) {
	if rp, ok := c.passes[format]; ok {
		return rp, nil
	}
	rp, err := RenderpassCreate(c.device, format)
	if err != nil {
		return nil, err
	}
	c.passes[format] = rp
	core.LogDebug("render pass created (attachments=%d, samples=%d)", rp.AttachmentCount, format.SampleCount)
	return rp, nil
}

func (c *RenderPassCache) Len() int {
	return len(c.passes)
}

func (c *RenderPassCache) Destroy() {
	for format, rp := range c.passes {
		rp.Destroy()
		delete(c.passes, format)
	}
}

// FramebufferCache hands out one framebuffer per RenderTargets value.
// It is not safe for concurrent use.
type FramebufferCache struct {
	device       DeviceFn
	renderPasses *RenderPassCache
	framebuffers map[RenderTargets]*VulkanFramebuffer
}

func NewFramebufferCache(device DeviceFn, renderPasses *RenderPassCache) *FramebufferCache {
	return &FramebufferCache{
		device:       device,
		renderPasses: renderPasses,
		framebuffers: make(map[RenderTargets]*VulkanFramebuffer),
	}
}

// Get returns the framebuffer for renderTargets, creating it and its render
// pass on first use.
func (c *FramebufferCache) Get(renderTargets RenderTargets) (*VulkanFramebuffer, error) {
	if !renderTargets.HasAttachments() {
		return nil, core.ErrNoAttachments
	}
	if fb, ok := c.framebuffers[renderTargets]; ok {
		return fb, nil
	}

	rp, err := c.renderPasses.Get(renderTargets.RenderPassFormat())
	if err != nil {
		return nil, err
	}
	fb, err := FramebufferCreate(c.device, rp, renderTargets)
	if err != nil {
		return nil, err
	}
	c.framebuffers[renderTargets] = fb
	return fb, nil
}

// InvalidateView destroys every framebuffer that references view and
// returns how many were dropped. Call it before destroying the view.
func (c *FramebufferCache) InvalidateView(view ImageView) int {
	handle := view.ViewHandle()
	dropped := 0
	for key, fb := range c.framebuffers {
		if slices.Contains(fb.Attachments(), handle) {
			fb.Destroy()
			delete(c.framebuffers, key)
			dropped++
		}
	}
	return dropped
}

func (c *FramebufferCache) Len() int {
	return len(c.framebuffers)
}

func (c *FramebufferCache) Destroy() {
	for key, fb := range c.framebuffers {
		fb.Destroy()
		delete(c.framebuffers, key)
	}
}
