package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

// VulkanRenderpass is a single-subpass render pass compatible with the
// RenderTargets its Format was derived from.
type VulkanRenderpass struct {
	Handle          vk.RenderPass
	Format          RenderPassFormat
	AttachmentCount uint32

	device DeviceFn
}

func RenderpassCreate(device DeviceFn, format RenderPassFormat) (*VulkanRenderpass, error) {
	outRenderpass := &VulkanRenderpass{
		Format: format,
		device: device,
	}

	attachmentDescriptions := make([]vk.AttachmentDescription, 0, MaxNumRenderTargets+1)

	// Main subpass
	subpass := vk.SubpassDescription{
		PipelineBindPoint: vk.PipelineBindPointGraphics,
	}

	// Depth goes first so the indices line up with RenderTargets.Attachments.
	if format.Depth.present() {
		attachmentDescriptions = append(attachmentDescriptions, attachmentDescription(format.Depth, format.SampleCount))

		depthAttachmentReference := vk.AttachmentReference{
			Attachment: 0,
			Layout:     format.Depth.Layout,
		}
		subpass.PDepthStencilAttachment = &depthAttachmentReference
	}

	// Color references keep their slot index, holes are left unused.
	colorReferenceCount := int(format.colorReferenceCount())

	colorAttachmentReferences := make([]vk.AttachmentReference, colorReferenceCount)
	for i := 0; i < colorReferenceCount; i++ {
		if !format.Color[i].present() {
			colorAttachmentReferences[i] = vk.AttachmentReference{
				Attachment: attachmentUnused,
				Layout:     vk.ImageLayoutUndefined,
			}
			continue
		}
		colorAttachmentReferences[i] = vk.AttachmentReference{
			Attachment: uint32(len(attachmentDescriptions)),
			Layout:     format.Color[i].Layout,
		}
		attachmentDescriptions = append(attachmentDescriptions, attachmentDescription(format.Color[i], format.SampleCount))
	}

	subpass.ColorAttachmentCount = uint32(colorReferenceCount)
	subpass.PColorAttachments = colorAttachmentReferences

	// Render pass dependencies.
	srcStageMask := vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)
	dstAccessMask := vk.AccessFlags(vk.AccessColorAttachmentReadBit) | vk.AccessFlags(vk.AccessColorAttachmentWriteBit)
	if format.Depth.present() {
		srcStageMask |= vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit) | vk.PipelineStageFlags(vk.PipelineStageLateFragmentTestsBit)
		dstAccessMask |= vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit) | vk.AccessFlags(vk.AccessDepthStencilAttachmentWriteBit)
	}

	dependency := vk.SubpassDependency{
		SrcSubpass:      vk.SubpassExternal,
		DstSubpass:      0,
		SrcStageMask:    srcStageMask,
		SrcAccessMask:   0,
		DstStageMask:    srcStageMask,
		DstAccessMask:   dstAccessMask,
		DependencyFlags: 0,
	}

	renderpassCreateInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachmentDescriptions)),
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}

	pRenderPass, res := device.CreateRenderPass(&renderpassCreateInfo)
	if res != vk.Success {
		err := &CreationError{Object: "render pass", Result: res}
		core.LogError("%s", err)
		return nil, err
	}
	outRenderpass.Handle = pRenderPass
	outRenderpass.AttachmentCount = uint32(len(attachmentDescriptions))
	return outRenderpass, nil
}

func attachmentDescription(format RenderTargetFormat, samples vk.SampleCountFlagBits) vk.AttachmentDescription {
	return vk.AttachmentDescription{
		Format:         format.Format,
		Samples:        samples,
		LoadOp:         vk.AttachmentLoadOpLoad,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpLoad,
		StencilStoreOp: vk.AttachmentStoreOpStore,
		InitialLayout:  format.InitialLayout,
		FinalLayout:    format.CurrentLayout,
	}
}

// Destroy releases the native render pass. Calling it more than once is a no-op.
func (vr *VulkanRenderpass) Destroy() {
	if vr.Handle != nil {
		vr.device.DestroyRenderPass(vr.Handle)
		vr.Handle = nil
	}
}
