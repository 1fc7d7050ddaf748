package core

import (
	"errors"
)

var (
	ErrObjectCreation      = errors.New("vulkan object creation failed")
	ErrInvalidSlot         = errors.New("render target slot out of range")
	ErrNoAttachments       = errors.New("render targets have no attachments")
	ErrExtentMismatch      = errors.New("render target extents differ")
	ErrSampleCountMismatch = errors.New("render target sample counts differ")
	ErrUnknownFormat       = errors.New("unknown image format")
	ErrUnknownLayout       = errors.New("unknown image layout")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrLimitExceeded       = errors.New("device limit exceeded")
	ErrEngineStage         = errors.New("engine is not in the required stage")
)
