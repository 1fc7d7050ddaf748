package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

// ImageView is the read-only view of an image that can be bound as a render
// target. The render target code never creates, destroys or transitions it.
//
// RenderTargets is used as a map key, so implementations must be comparable.
// Implement the methods on a pointer receiver; a slice or map backed value
// type makes hashing panic.
type ImageView interface {
	ViewHandle() vk.ImageView
	Format() vk.Format
	// ImageLayout is the layout declared for the underlying image.
	ImageLayout() vk.ImageLayout
	SampleCount() vk.SampleCountFlagBits
	MipLevelExtent(level uint32) vk.Extent3D
	NumLayers() uint32
}

/** @brief A view bound to a render target slot along with the layout it has while rendering. */
type RenderTargetBinding struct {
	View ImageView
	// Only meaningful when View is set.
	Layout vk.ImageLayout
}

func (b RenderTargetBinding) present() bool {
	return b.View != nil
}

// RenderTargets is a fixed set of render target slots: one depth/stencil slot
// and MaxNumRenderTargets color slots. Slot indices map directly to the
// fragment shader output locations, so they are never compacted.
type RenderTargets struct {
	Depth RenderTargetBinding
	Color [MaxNumRenderTargets]RenderTargetBinding
}

/** @brief Format information for a single render target slot. */
type RenderTargetFormat struct {
	Format vk.Format
	// Layout the image is in before the render pass begins.
	InitialLayout vk.ImageLayout
	// Layout the image is left in after the render pass.
	CurrentLayout vk.ImageLayout
	// Layout used by the subpass while rendering.
	Layout vk.ImageLayout
}

func (f RenderTargetFormat) present() bool {
	return f.Format != vk.FormatUndefined
}

// RenderPassFormat describes everything a render pass needs to be compatible
// with a set of render targets. It is comparable and can be used as a map key.
type RenderPassFormat struct {
	Color       [MaxNumRenderTargets]RenderTargetFormat
	Depth       RenderTargetFormat
	SampleCount vk.SampleCountFlagBits
}

// ColorCount returns the number of color slots with a format.
func (f RenderPassFormat) ColorCount() uint32 {
	var count uint32
	for i := 0; i < MaxNumRenderTargets; i++ {
		if f.Color[i].present() {
			count++
		}
	}
	return count
}

func (f RenderPassFormat) HasDepth() bool {
	return f.Depth.present()
}

// colorReferenceCount is the number of color references a subpass needs to
// keep every used slot at its index: the highest used slot plus one.
func (f RenderPassFormat) colorReferenceCount() uint32 {
	var count uint32
	for i := 0; i < MaxNumRenderTargets; i++ {
		if f.Color[i].present() {
			count = uint32(i) + 1
		}
	}
	return count
}

// AttachmentCount returns the number of attachments a compatible render pass declares.
func (f RenderPassFormat) AttachmentCount() uint32 {
	count := f.ColorCount()
	if f.HasDepth() {
		count++
	}
	return count
}

/** @brief Dimensions of a framebuffer. The zero value means there are no attachments. */
type FramebufferSize struct {
	Width  uint32
	Height uint32
	Layers uint32
}

func (s FramebufferSize) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Width, s.Height, s.Layers)
}

// SetColorTarget binds view to the given color slot. A nil view clears the slot.
func (rt *RenderTargets) SetColorTarget(slot int, view ImageView, layout vk.ImageLayout) error {
	if slot < 0 || slot >= MaxNumRenderTargets {
		return fmt.Errorf("color slot %d (max=%d): %w", slot, MaxNumRenderTargets-1, core.ErrInvalidSlot)
	}
	rt.Color[slot] = RenderTargetBinding{View: view, Layout: layout}
	return nil
}

// SetDepthTarget binds view to the depth/stencil slot. A nil view clears the slot.
func (rt *RenderTargets) SetDepthTarget(view ImageView, layout vk.ImageLayout) {
	rt.Depth = RenderTargetBinding{View: view, Layout: layout}
}

// RenderPassFormat derives the render pass compatibility key. Color slots are
// visited in index order before the depth slot, and the sample count of the
// last present view wins.
func (rt RenderTargets) RenderPassFormat() RenderPassFormat {
	result := RenderPassFormat{}

	for i := 0; i < MaxNumRenderTargets; i++ {
		if rt.Color[i].present() {
			result.Color[i] = targetFormat(rt.Color[i])
			result.SampleCount = rt.Color[i].View.SampleCount()
		}
	}

	if rt.Depth.present() {
		result.Depth = targetFormat(rt.Depth)
		result.SampleCount = rt.Depth.View.SampleCount()
	}

	return result
}

func targetFormat(binding RenderTargetBinding) RenderTargetFormat {
	// TODO: track the previous layout separately once load ops can skip transitions.
	return RenderTargetFormat{
		Format:        binding.View.Format(),
		InitialLayout: binding.View.ImageLayout(),
		CurrentLayout: binding.View.ImageLayout(),
		Layout:        binding.Layout,
	}
}

// Attachments returns the view handles in framebuffer order: depth first,
// then the color slots in index order. Empty slots are skipped.
func (rt RenderTargets) Attachments() []vk.ImageView {
	result := make([]vk.ImageView, 0, MaxNumRenderTargets+1)

	if rt.Depth.present() {
		result = append(result, rt.Depth.View.ViewHandle())
	}

	for i := 0; i < MaxNumRenderTargets; i++ {
		if rt.Color[i].present() {
			result = append(result, rt.Color[i].View.ViewHandle())
		}
	}
	return result
}

// ImageSize returns the size of the depth target if there is one, otherwise
// the size of the first color target.
func (rt RenderTargets) ImageSize() FramebufferSize {
	if rt.Depth.present() {
		return renderTargetSize(rt.Depth.View)
	}

	for i := 0; i < MaxNumRenderTargets; i++ {
		if rt.Color[i].present() {
			return renderTargetSize(rt.Color[i].View)
		}
	}
	return FramebufferSize{}
}

// HasAttachments reports whether at least one slot is bound.
func (rt RenderTargets) HasAttachments() bool {
	if rt.Depth.present() {
		return true
	}
	for i := 0; i < MaxNumRenderTargets; i++ {
		if rt.Color[i].present() {
			return true
		}
	}
	return false
}

func renderTargetSize(view ImageView) FramebufferSize {
	extent := view.MipLevelExtent(0)
	return FramebufferSize{
		Width:  extent.Width,
		Height: extent.Height,
		Layers: view.NumLayers(),
	}
}
