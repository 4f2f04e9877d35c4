//go:build !opencl

package accel

import (
	"errors"

	"tunnelrunner/internal/tunnel"
)

// Compositor is unavailable without the opencl build tag.
type Compositor struct{}

var _ tunnel.Compositor = (*Compositor)(nil)

func New() (*Compositor, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (c *Compositor) Name() string { return "opencl" }

func (c *Compositor) DeviceName() string { return "" }

func (c *Compositor) Composite(*tunnel.Surface, *tunnel.Texture, *tunnel.Tables, tunnel.View) error {
	return errors.New("OpenCL compositor unavailable")
}

func (c *Compositor) Close() {}
