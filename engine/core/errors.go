package core

import (
	"errors"
	"fmt"
)

var (
	// ErrGraphicsResource is matched by every GraphicsResourceError.
	ErrGraphicsResource = errors.New("graphics resource creation failed")
	// ErrSurfaceDescriptor reports an unusable output window or back buffer.
	ErrSurfaceDescriptor = errors.New("invalid surface descriptor")
	ErrNotAttached       = errors.New("overlay is not attached")
)

// GraphicsResourceError is returned when the device or driver refuses a creation call.
type GraphicsResourceError struct {
	// Op names the refused call, e.g. "CreateRenderTargetView".
	Op  string
	Err error
}

func NewGraphicsResourceError(op string, err error) *GraphicsResourceError {
	return &GraphicsResourceError{Op: op, Err: err}
}

func (e *GraphicsResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, ErrGraphicsResource)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrGraphicsResource, e.Err)
}

func (e *GraphicsResourceError) Unwrap() error {
	return e.Err
}

func (e *GraphicsResourceError) Is(target error) bool {
	return target == ErrGraphicsResource
}
