package platform

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/rendertargets/engine/core"
)

func init() {
	// GLFW calls must run on the main OS thread
	runtime.LockOSThread()
}

// Platform provides the Vulkan loader through GLFW. No window is opened:
// render targets are created offscreen.
type Platform struct {
	started bool
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup() error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		err := fmt.Errorf("glfw could not find a Vulkan loader")
		core.LogError(err.Error())
		return err
	}
	p.started = true
	return nil
}

// GetVulkanProcAddress returns vkGetInstanceProcAddr as resolved by GLFW.
func (p *Platform) GetVulkanProcAddress() unsafe.Pointer {
	if !p.started {
		return nil
	}
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (p *Platform) Shutdown() error {
	if p.started {
		glfw.Terminate()
		p.started = false
	}
	return nil
}
