package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestFindMemoryIndex(t *testing.T) {
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)

	memory := vk.PhysicalDeviceMemoryProperties{MemoryTypeCount: 3}
	memory.MemoryTypes[0].PropertyFlags = hostVisible
	memory.MemoryTypes[1].PropertyFlags = deviceLocal
	memory.MemoryTypes[2].PropertyFlags = deviceLocal | hostVisible
	// Beyond MemoryTypeCount, never considered.
	memory.MemoryTypes[3].PropertyFlags = deviceLocal

	tests := []struct {
		name       string
		typeFilter uint32
		flags      vk.MemoryPropertyFlags
		want       int32
	}{
		{"first match", 0b111, deviceLocal, 1},
		{"filtered out", 0b101, deviceLocal, 2},
		{"all flags required", 0b111, deviceLocal | hostVisible, 2},
		{"no match", 0b001, deviceLocal, -1},
		{"past type count", 0b1000, deviceLocal, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findMemoryIndex(&memory, tt.typeFilter, uint32(tt.flags)); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindMemoryIndexUsesSelectedDevice(t *testing.T) {
	context := &VulkanContext{Device: &VulkanDevice{}}
	context.Device.Memory.MemoryTypeCount = 1
	context.Device.Memory.MemoryTypes[0].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)

	if got := context.FindMemoryIndex(1, uint32(vk.MemoryPropertyDeviceLocalBit)); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := context.FindMemoryIndex(1, uint32(vk.MemoryPropertyHostCoherentBit)); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestPhysicalDeviceRequiresDiscreteGPU(t *testing.T) {
	properties := vk.PhysicalDeviceProperties{DeviceType: vk.PhysicalDeviceTypeIntegratedGpu}
	if _, ok := PhysicalDeviceMeetsRequirements(nil, &properties, VulkanPhysicalDeviceRequirements{DiscreteGPU: true}); ok {
		t.Error("integrated GPU accepted when a discrete one is required")
	}
}
