package renderer

import (
	"errors"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/config"
	"github.com/spaghettifunk/rendertargets/engine/core"
	"github.com/spaghettifunk/rendertargets/engine/renderer/vulkan"
)

// newTestRenderer returns a renderer whose images are never created on a
// device, with depthFormat as the detected depth format.
func newTestRenderer(depthFormat vk.Format) *Renderer {
	r := New(nil, false, false)
	r.backend.Context().Device = &vulkan.VulkanDevice{DepthFormat: depthFormat}
	r.newImage = func(info vulkan.ImageInfo) (*vulkan.VulkanImage, error) {
		return &vulkan.VulkanImage{Info: info}, nil
	}
	return r
}

func target(role string, slot int, format string) config.TargetConfig {
	return config.TargetConfig{
		Role:    role,
		Slot:    slot,
		Format:  format,
		Width:   64,
		Height:  64,
		Layers:  1,
		Samples: 1,
		Layout:  "general",
	}
}

func TestBuildTargets(t *testing.T) {
	r := newTestRenderer(vk.FormatD24UnormS8Uint)

	rt, err := r.BuildTargets([]config.TargetConfig{
		target(config.RoleDepth, 0, config.FormatAuto),
		target(config.RoleColor, 3, "r8g8b8a8_unorm"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rt.Depth.View == nil || rt.Depth.View.Format() != vk.FormatD24UnormS8Uint {
		t.Errorf("depth slot not bound to the detected format")
	}
	if rt.Color[3].View == nil || rt.Color[3].Layout != vk.ImageLayoutGeneral {
		t.Errorf("color slot 3 not bound: %+v", rt.Color[3])
	}
	if len(r.images) != 2 {
		t.Errorf("tracked %d images, want 2", len(r.images))
	}
}

func TestBuildTargetsSlotOutOfRange(t *testing.T) {
	for _, slot := range []int{-1, vulkan.MaxNumRenderTargets} {
		r := newTestRenderer(vk.FormatUndefined)
		_, err := r.BuildTargets([]config.TargetConfig{target(config.RoleColor, slot, "r8g8b8a8_unorm")})
		if !errors.Is(err, core.ErrInvalidSlot) {
			t.Errorf("slot %d: got %v, want ErrInvalidSlot", slot, err)
		}
		// The image is still tracked so ReleaseTargets frees it.
		if len(r.images) != 1 {
			t.Errorf("slot %d: tracked %d images, want 1", slot, len(r.images))
		}
	}
}

func TestLimitsWithoutDevice(t *testing.T) {
	r := New(nil, false, false)
	if limits := r.Limits(); limits.MaxFramebufferWidth != 0 {
		t.Errorf("got %+v, want zero limits", limits)
	}
}
