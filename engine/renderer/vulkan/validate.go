package vulkan

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

// ValidateRenderTargets checks that all bound views share the framebuffer
// extent, layer count and sample count. The derivations on RenderTargets
// never do this themselves.
func ValidateRenderTargets(rt RenderTargets) error {
	if !rt.HasAttachments() {
		return nil
	}

	size := rt.ImageSize()
	var samples vk.SampleCountFlagBits
	var errs []error

	check := func(name string, binding RenderTargetBinding) {
		if !binding.present() {
			return
		}
		if got := renderTargetSize(binding.View); got != size {
			errs = append(errs, fmt.Errorf("%s is %s, expected %s: %w", name, got, size, core.ErrExtentMismatch))
		}
		if samples == 0 {
			samples = binding.View.SampleCount()
		} else if got := binding.View.SampleCount(); got != samples {
			errs = append(errs, fmt.Errorf("%s has %d samples, expected %d: %w", name, got, samples, core.ErrSampleCountMismatch))
		}
	}

	check("depth", rt.Depth)
	for i := 0; i < MaxNumRenderTargets; i++ {
		check(fmt.Sprintf("color[%d]", i), rt.Color[i])
	}
	return errors.Join(errs...)
}

// CheckFramebufferLimits checks rt against the framebuffer limits of a
// device. Color slots count up to the highest one used, since holes still
// take a color reference.
func CheckFramebufferLimits(limits vk.PhysicalDeviceLimits, rt RenderTargets) error {
	var errs []error

	size := rt.ImageSize()
	if size.Width > limits.MaxFramebufferWidth || size.Height > limits.MaxFramebufferHeight || size.Layers > limits.MaxFramebufferLayers {
		errs = append(errs, fmt.Errorf("framebuffer size %s exceeds %dx%dx%d: %w", size,
			limits.MaxFramebufferWidth, limits.MaxFramebufferHeight, limits.MaxFramebufferLayers, core.ErrLimitExceeded))
	}

	if count := rt.RenderPassFormat().colorReferenceCount(); count > limits.MaxColorAttachments {
		errs = append(errs, fmt.Errorf("%d color attachments exceed %d: %w", count, limits.MaxColorAttachments, core.ErrLimitExceeded))
	}
	return errors.Join(errs...)
}
