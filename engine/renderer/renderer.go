package renderer

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/config"
	"github.com/spaghettifunk/rendertargets/engine/core"
	"github.com/spaghettifunk/rendertargets/engine/platform"
	"github.com/spaghettifunk/rendertargets/engine/renderer/vulkan"
)

// Renderer creates render target images from configuration and hands out
// cached render passes and framebuffers for them.
type Renderer struct {
	backend      *vulkan.VulkanRenderer
	renderPasses *vulkan.RenderPassCache
	framebuffers *vulkan.FramebufferCache
	images       []*vulkan.VulkanImage

	newImage func(info vulkan.ImageInfo) (*vulkan.VulkanImage, error)
}

func New(p *platform.Platform, debug, discreteGPU bool) *Renderer {
	r := &Renderer{
		backend: vulkan.New(p, debug, vulkan.VulkanPhysicalDeviceRequirements{
			Graphics:    true,
			DiscreteGPU: discreteGPU,
		}),
	}
	r.newImage = func(info vulkan.ImageInfo) (*vulkan.VulkanImage, error) {
		return vulkan.ImageCreate(r.backend.Context(), info)
	}
	return r
}

func (r *Renderer) Initialize(appName string) error {
	if err := r.backend.Initialize(appName); err != nil {
		return err
	}
	context := r.backend.Context()
	r.renderPasses = vulkan.NewRenderPassCache(context)
	r.framebuffers = vulkan.NewFramebufferCache(context, r.renderPasses)
	return nil
}

// BuildTargets creates one image per configured target and binds it to its
// slot. Images created before a failure are kept until ReleaseTargets.
func (r *Renderer) BuildTargets(targets []config.TargetConfig) (vulkan.RenderTargets, error) {
	var rt vulkan.RenderTargets
	depthFormat := r.deviceDepthFormat()
	for i, t := range targets {
		info, layout, err := TargetImageInfo(t, depthFormat)
		if err != nil {
			return vulkan.RenderTargets{}, fmt.Errorf("targets[%d]: %w", i, err)
		}
		image, err := r.newImage(info)
		if err != nil {
			return vulkan.RenderTargets{}, fmt.Errorf("targets[%d]: %w", i, err)
		}
		r.images = append(r.images, image)

		if t.Role == config.RoleDepth {
			rt.SetDepthTarget(image, layout)
			continue
		}
		if err := rt.SetColorTarget(t.Slot, image, layout); err != nil {
			return vulkan.RenderTargets{}, fmt.Errorf("targets[%d]: %w", i, err)
		}
	}
	return rt, nil
}

// Limits returns the framebuffer limits of the selected device.
func (r *Renderer) Limits() vk.PhysicalDeviceLimits {
	if device := r.backend.Context().Device; device != nil {
		return device.Properties.Limits
	}
	return vk.PhysicalDeviceLimits{}
}

func (r *Renderer) deviceDepthFormat() vk.Format {
	if device := r.backend.Context().Device; device != nil {
		return device.DepthFormat
	}
	return vk.FormatUndefined
}

// Framebuffer returns a framebuffer for rt, creating it on first use.
func (r *Renderer) Framebuffer(rt vulkan.RenderTargets) (*vulkan.VulkanFramebuffer, error) {
	return r.framebuffers.Get(rt)
}

// ReleaseTargets destroys every image created by BuildTargets along with the
// framebuffers that reference them.
func (r *Renderer) ReleaseTargets() {
	for _, image := range r.images {
		if dropped := r.framebuffers.InvalidateView(image); dropped > 0 {
			core.LogDebug("dropped %d framebuffer(s) referencing released image", dropped)
		}
		image.Destroy(r.backend.Context())
	}
	r.images = nil
}

func (r *Renderer) Shutdown() error {
	if r.framebuffers != nil {
		r.ReleaseTargets()
		r.framebuffers.Destroy()
		r.renderPasses.Destroy()
	}
	return r.backend.Shutdown()
}
