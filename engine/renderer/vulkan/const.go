package vulkan

/**
 * @brief Max number of simultaneously bound color attachments
 */
const MaxNumRenderTargets = 8

// attachmentUnused mirrors VK_ATTACHMENT_UNUSED.
const attachmentUnused = ^uint32(0)
