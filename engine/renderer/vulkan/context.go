package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

// DeviceFn is the set of device entry points needed to create and destroy
// render passes and framebuffers.
type DeviceFn interface {
	CreateRenderPass(info *vk.RenderPassCreateInfo) (vk.RenderPass, vk.Result)
	DestroyRenderPass(renderPass vk.RenderPass)
	CreateFramebuffer(info *vk.FramebufferCreateInfo) (vk.Framebuffer, vk.Result)
	DestroyFramebuffer(framebuffer vk.Framebuffer)
}

// CreationError is returned when the driver refuses to create an object.
type CreationError struct {
	Object string
	Result vk.Result
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create %s: %s", e.Object, VulkanResultString(e.Result, false))
}

func (e *CreationError) Unwrap() error {
	return core.ErrObjectCreation
}

type VulkanContext struct {
	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks

	debugMessenger vk.DebugReportCallback

	Device *VulkanDevice
}

func (vc *VulkanContext) CreateRenderPass(info *vk.RenderPassCreateInfo) (vk.RenderPass, vk.Result) {
	var pRenderPass vk.RenderPass
	res := vk.CreateRenderPass(vc.Device.LogicalDevice, info, vc.Allocator, &pRenderPass)
	return pRenderPass, res
}

func (vc *VulkanContext) DestroyRenderPass(renderPass vk.RenderPass) {
	vk.DestroyRenderPass(vc.Device.LogicalDevice, renderPass, vc.Allocator)
}

func (vc *VulkanContext) CreateFramebuffer(info *vk.FramebufferCreateInfo) (vk.Framebuffer, vk.Result) {
	var pFramebuffer vk.Framebuffer
	res := vk.CreateFramebuffer(vc.Device.LogicalDevice, info, vc.Allocator, &pFramebuffer)
	return pFramebuffer, res
}

func (vc *VulkanContext) DestroyFramebuffer(framebuffer vk.Framebuffer) {
	vk.DestroyFramebuffer(vc.Device.LogicalDevice, framebuffer, vc.Allocator)
}

// FindMemoryIndex looks up a memory type in the properties cached when the
// device was selected.
func (vc *VulkanContext) FindMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	index := findMemoryIndex(&vc.Device.Memory, typeFilter, propertyFlags)
	if index < 0 {
		core.LogWarn("Unable to find suitable memory type!")
	}
	return index
}

func findMemoryIndex(memory *vk.PhysicalDeviceMemoryProperties, typeFilter, propertyFlags uint32) int32 {
	for i := uint32(0); i < memory.MemoryTypeCount; i++ {
		// Check each memory type to see if its bit is set to 1.
		if (typeFilter&(1<<i)) != 0 && (uint32(memory.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	return -1
}
