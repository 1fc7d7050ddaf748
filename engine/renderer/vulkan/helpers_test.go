package vulkan

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Fake handles point into static memory so they are distinct and non-nil.
// They are only compared, never passed to the driver.
var handleMemory [4096]byte

type handleArena struct {
	used int
}

var sharedArena = &handleArena{}

func (a *handleArena) next() unsafe.Pointer {
	if a.used >= len(handleMemory) {
		panic("fake handle memory exhausted")
	}
	p := unsafe.Pointer(&handleMemory[a.used])
	a.used++
	return p
}

func (a *handleArena) imageView() vk.ImageView {
	return vk.ImageView(a.next())
}

// stubDevice mimics the driver checks that matter here: a framebuffer is only
// created when its attachment count matches the render pass it targets.
type stubDevice struct {
	arena *handleArena

	renderPasses map[vk.RenderPass]uint32
	framebuffers map[vk.Framebuffer]bool

	renderPassInfo  *vk.RenderPassCreateInfo
	framebufferInfo *vk.FramebufferCreateInfo

	renderPassResult vk.Result

	createdFramebuffers   int
	destroyedFramebuffers int
	destroyedRenderPasses int
}

func newStubDevice() *stubDevice {
	return &stubDevice{
		arena:        sharedArena,
		renderPasses: make(map[vk.RenderPass]uint32),
		framebuffers: make(map[vk.Framebuffer]bool),
	}
}

func (d *stubDevice) CreateRenderPass(info *vk.RenderPassCreateInfo) (vk.RenderPass, vk.Result) {
	d.renderPassInfo = info
	if d.renderPassResult != vk.Success {
		return nil, d.renderPassResult
	}
	rp := vk.RenderPass(d.arena.next())
	d.renderPasses[rp] = info.AttachmentCount
	return rp, vk.Success
}

func (d *stubDevice) DestroyRenderPass(renderPass vk.RenderPass) {
	delete(d.renderPasses, renderPass)
	d.destroyedRenderPasses++
}

func (d *stubDevice) CreateFramebuffer(info *vk.FramebufferCreateInfo) (vk.Framebuffer, vk.Result) {
	d.framebufferInfo = info
	count, ok := d.renderPasses[info.RenderPass]
	if !ok || count != info.AttachmentCount || int(info.AttachmentCount) != len(info.PAttachments) {
		return nil, vk.ErrorInitializationFailed
	}
	fb := vk.Framebuffer(d.arena.next())
	d.framebuffers[fb] = true
	d.createdFramebuffers++
	return fb, vk.Success
}

func (d *stubDevice) DestroyFramebuffer(framebuffer vk.Framebuffer) {
	delete(d.framebuffers, framebuffer)
	d.destroyedFramebuffers++
}

func (d *stubDevice) liveRenderPass(rp *VulkanRenderpass) bool {
	_, ok := d.renderPasses[rp.Handle]
	return ok
}

type testImage struct {
	format  vk.Format
	width   uint32
	height  uint32
	layers  uint32
	samples vk.SampleCountFlagBits
	layout  vk.ImageLayout
}

func (d *stubDevice) image(t testImage) *VulkanImage {
	if t.layers == 0 {
		t.layers = 1
	}
	if t.samples == 0 {
		t.samples = vk.SampleCount1Bit
	}
	return &VulkanImage{
		View: d.arena.imageView(),
		Info: ImageInfo{
			Format:    t.format,
			Width:     t.width,
			Height:    t.height,
			Layers:    t.layers,
			MipLevels: 1,
			Samples:   t.samples,
			Layout:    t.layout,
		},
	}
}

func (d *stubDevice) colorImage(width, height uint32) *VulkanImage {
	return d.image(testImage{
		format: vk.FormatR8g8b8a8Unorm,
		width:  width,
		height: height,
		layout: vk.ImageLayoutColorAttachmentOptimal,
	})
}

func (d *stubDevice) depthImage(width, height uint32) *VulkanImage {
	return d.image(testImage{
		format: vk.FormatD32Sfloat,
		width:  width,
		height: height,
		layout: vk.ImageLayoutDepthStencilAttachmentOptimal,
	})
}
