package renderer

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/config"
	"github.com/spaghettifunk/rendertargets/engine/core"
	"github.com/spaghettifunk/rendertargets/engine/renderer/vulkan"
)

// TargetImageInfo translates a configured target into image creation
// parameters and the layout the image is bound with. A depth target with
// format "auto" uses depthFormat, the format detected on the device.
func TargetImageInfo(t config.TargetConfig, depthFormat vk.Format) (vulkan.ImageInfo, vk.ImageLayout, error) {
	format, err := targetFormat(t, depthFormat)
	if err != nil {
		return vulkan.ImageInfo{}, vk.ImageLayoutUndefined, err
	}
	layout, err := vulkan.ParseImageLayout(t.Layout)
	if err != nil {
		return vulkan.ImageInfo{}, vk.ImageLayoutUndefined, err
	}
	samples, err := vulkan.ParseSampleCount(t.Samples)
	if err != nil {
		return vulkan.ImageInfo{}, vk.ImageLayoutUndefined, err
	}

	isDepth := vulkan.FormatIsDepth(format)
	if isDepth != (t.Role == config.RoleDepth) {
		return vulkan.ImageInfo{}, vk.ImageLayoutUndefined, fmt.Errorf("format %s cannot be used as a %s target: %w", t.Format, t.Role, core.ErrInvalidConfig)
	}

	info := vulkan.ImageInfo{
		Format:    format,
		Width:     t.Width,
		Height:    t.Height,
		Layers:    t.Layers,
		MipLevels: 1,
		Samples:   samples,
		Layout:    layout,
	}
	if isDepth {
		info.Usage = vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit)
		info.Aspect = vk.ImageAspectFlags(vk.ImageAspectDepthBit)
		if vulkan.FormatHasStencil(format) {
			info.Aspect |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
		}
	} else {
		info.Usage = vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageSampledBit)
		info.Aspect = vk.ImageAspectFlags(vk.ImageAspectColorBit)
	}
	return info, layout, nil
}

func targetFormat(t config.TargetConfig, depthFormat vk.Format) (vk.Format, error) {
	if t.Role != config.RoleDepth || !strings.EqualFold(t.Format, config.FormatAuto) {
		return vulkan.ParseFormat(t.Format)
	}
	if depthFormat == vk.FormatUndefined {
		return vk.FormatUndefined, fmt.Errorf("no depth format detected for %q: %w", t.Format, core.ErrUnknownFormat)
	}
	return depthFormat, nil
}
