package vulkan

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

var formatNames = map[string]vk.Format{
	"r8g8b8a8_unorm":      vk.FormatR8g8b8a8Unorm,
	"r8g8b8a8_srgb":       vk.FormatR8g8b8a8Srgb,
	"b8g8r8a8_unorm":      vk.FormatB8g8r8a8Unorm,
	"b8g8r8a8_srgb":       vk.FormatB8g8r8a8Srgb,
	"r16g16b16a16_sfloat": vk.FormatR16g16b16a16Sfloat,
	"r32g32b32a32_sfloat": vk.FormatR32g32b32a32Sfloat,
	"r32_uint":            vk.FormatR32Uint,
	"d16_unorm":           vk.FormatD16Unorm,
	"d32_sfloat":          vk.FormatD32Sfloat,
	"d24_unorm_s8_uint":   vk.FormatD24UnormS8Uint,
	"d32_sfloat_s8_uint":  vk.FormatD32SfloatS8Uint,
}

var layoutNames = map[string]vk.ImageLayout{
	"undefined":                        vk.ImageLayoutUndefined,
	"general":                          vk.ImageLayoutGeneral,
	"color_attachment_optimal":         vk.ImageLayoutColorAttachmentOptimal,
	"depth_stencil_attachment_optimal": vk.ImageLayoutDepthStencilAttachmentOptimal,
	"depth_stencil_read_only_optimal":  vk.ImageLayoutDepthStencilReadOnlyOptimal,
	"shader_read_only_optimal":         vk.ImageLayoutShaderReadOnlyOptimal,
	"transfer_src_optimal":             vk.ImageLayoutTransferSrcOptimal,
}

func ParseFormat(name string) (vk.Format, error) {
	if f, ok := formatNames[strings.ToLower(name)]; ok {
		return f, nil
	}
	return vk.FormatUndefined, fmt.Errorf("%q: %w", name, core.ErrUnknownFormat)
}

func ParseImageLayout(name string) (vk.ImageLayout, error) {
	if l, ok := layoutNames[strings.ToLower(name)]; ok {
		return l, nil
	}
	return vk.ImageLayoutUndefined, fmt.Errorf("%q: %w", name, core.ErrUnknownLayout)
}

// ParseSampleCount converts a sample count (1, 2, 4, ... 64) to its flag bit.
func ParseSampleCount(samples uint32) (vk.SampleCountFlagBits, error) {
	switch samples {
	case 0, 1:
		return vk.SampleCount1Bit, nil
	case 2:
		return vk.SampleCount2Bit, nil
	case 4:
		return vk.SampleCount4Bit, nil
	case 8:
		return vk.SampleCount8Bit, nil
	case 16:
		return vk.SampleCount16Bit, nil
	case 32:
		return vk.SampleCount32Bit, nil
	case 64:
		return vk.SampleCount64Bit, nil
	}
	return 0, fmt.Errorf("unsupported sample count %d: %w", samples, core.ErrInvalidConfig)
}

func FormatIsDepth(format vk.Format) bool {
	switch format {
	case vk.FormatD16Unorm, vk.FormatD32Sfloat, vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint, vk.FormatD16UnormS8Uint, vk.FormatX8D24UnormPack32:
		return true
	}
	return false
}

func FormatHasStencil(format vk.Format) bool {
	switch format {
	case vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint, vk.FormatD16UnormS8Uint, vk.FormatS8Uint:
		return true
	}
	return false
}
