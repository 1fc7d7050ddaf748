package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

/** @brief Creation parameters of a render target image. */
type ImageInfo struct {
	Format    vk.Format
	Width     uint32
	Height    uint32
	Layers    uint32
	MipLevels uint32
	Samples   vk.SampleCountFlagBits
	// Layout the image is declared to be in while it is used as a render target.
	Layout vk.ImageLayout
	Usage  vk.ImageUsageFlags
	Aspect vk.ImageAspectFlags
}

type VulkanImage struct {
	Handle vk.Image
	Memory vk.DeviceMemory
	View   vk.ImageView
	Info   ImageInfo
}

// ImageCreate creates a 2D image backed by device local memory and a view
// covering every array layer of its first mip level.
func ImageCreate(context *VulkanContext, info ImageInfo) (*VulkanImage, error) {
	if info.Layers == 0 {
		info.Layers = 1
	}
	if info.MipLevels == 0 {
		info.MipLevels = 1
	}
	if info.Samples == 0 {
		info.Samples = vk.SampleCount1Bit
	}

	outImage := &VulkanImage{
		Info: info,
	}

	imageCreateInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    info.Format,
		Extent: vk.Extent3D{
			Width:  info.Width,
			Height: info.Height,
			Depth:  1,
		},
		MipLevels:     info.MipLevels,
		ArrayLayers:   info.Layers,
		Samples:       info.Samples,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         info.Usage,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}

	var pImage vk.Image
	if res := vk.CreateImage(context.Device.LogicalDevice, &imageCreateInfo, context.Allocator, &pImage); res != vk.Success {
		err := &CreationError{Object: "image", Result: res}
		core.LogError(err.Error())
		return nil, err
	}
	outImage.Handle = pImage

	// Query memory requirements.
	var memoryRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(context.Device.LogicalDevice, pImage, &memoryRequirements)
	memoryRequirements.Deref()

	memoryType := context.FindMemoryIndex(memoryRequirements.MemoryTypeBits, uint32(vk.MemoryPropertyDeviceLocalBit))
	if memoryType == -1 {
		outImage.Destroy(context)
		err := fmt.Errorf("required memory type not found, image not valid: %w", core.ErrObjectCreation)
		core.LogError(err.Error())
		return nil, err
	}

	// Allocate memory
	memoryAllocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memoryRequirements.Size,
		MemoryTypeIndex: uint32(memoryType),
	}
	var pMemory vk.DeviceMemory
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &memoryAllocateInfo, context.Allocator, &pMemory); res != vk.Success {
		outImage.Destroy(context)
		err := &CreationError{Object: "image memory", Result: res}
		core.LogError(err.Error())
		return nil, err
	}
	outImage.Memory = pMemory

	// Bind the memory
	if res := vk.BindImageMemory(context.Device.LogicalDevice, pImage, pMemory, 0); res != vk.Success {
		outImage.Destroy(context)
		err := &CreationError{Object: "image memory binding", Result: res}
		core.LogError(err.Error())
		return nil, err
	}

	viewCreateInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    pImage,
		ViewType: vk.ImageViewType2dArray,
		Format:   info.Format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     info.Aspect,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     info.Layers,
		},
	}

	var pView vk.ImageView
	if res := vk.CreateImageView(context.Device.LogicalDevice, &viewCreateInfo, context.Allocator, &pView); res != vk.Success {
		outImage.Destroy(context)
		err := &CreationError{Object: "image view", Result: res}
		core.LogError(err.Error())
		return nil, err
	}
	outImage.View = pView

	return outImage, nil
}

func (vi *VulkanImage) Destroy(context *VulkanContext) {
	if vi.View != nil {
		vk.DestroyImageView(context.Device.LogicalDevice, vi.View, context.Allocator)
		vi.View = nil
	}
	if vi.Memory != nil {
		vk.FreeMemory(context.Device.LogicalDevice, vi.Memory, context.Allocator)
		vi.Memory = nil
	}
	if vi.Handle != nil {
		vk.DestroyImage(context.Device.LogicalDevice, vi.Handle, context.Allocator)
		vi.Handle = nil
	}
}

// ViewHandle returns the native view covering all layers of mip level 0.
func (vi *VulkanImage) ViewHandle() vk.ImageView {
	return vi.View
}

func (vi *VulkanImage) Format() vk.Format {
	return vi.Info.Format
}

func (vi *VulkanImage) ImageLayout() vk.ImageLayout {
	return vi.Info.Layout
}

func (vi *VulkanImage) SampleCount() vk.SampleCountFlagBits {
	return vi.Info.Samples
}

// MipLevelExtent returns the extent of the given mip level, never smaller than one texel.
func (vi *VulkanImage) MipLevelExtent(level uint32) vk.Extent3D {
	return vk.Extent3D{
		Width:  mipDimension(vi.Info.Width, level),
		Height: mipDimension(vi.Info.Height, level),
		Depth:  1,
	}
}

func (vi *VulkanImage) NumLayers() uint32 {
	return vi.Info.Layers
}

func mipDimension(size, level uint32) uint32 {
	if level >= 32 {
		return 1
	}
	return max(1, size>>level)
}
