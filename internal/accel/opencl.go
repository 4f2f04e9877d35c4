//go:build opencl

package accel

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"tunnelrunner/internal/tunnel"
)

const tunnelKernelSource = `__kernel void tunnel(
    const int width,
    const int height,
    const int table_width,
    const int shift_x,
    const int shift_y,
    const int rotation,
    const int translation,
    const int tex_size,
    const int mask,
    const int flat,
    __global const int* distance,
    __global const int* angle,
    __global const uchar* texture,
    __global uint* out)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    long ty;
    long tx;
    if (flat) {
        ty = (long)y + translation;
        tx = (long)x + rotation;
    } else {
        int t = (y + shift_y) * table_width + x + shift_x;
        ty = (long)distance[t] + translation;
        tx = (long)angle[t] + rotation;
    }
    ty %= tex_size;
    if (ty < 0) {
        ty += tex_size;
    }
    tx %= tex_size;
    if (tx < 0) {
        tx += tex_size;
    }
    uint c = texture[ty * tex_size + tx];
    out[idx] = ((c << 16) | (c << 8) | c) & (uint)mask;
}`

// Kernel argument slots.
const (
	argWidth = iota
	argHeight
	argTableWidth
	argShiftX
	argShiftY
	argRotation
	argTranslation
	argTexSize
	argMask
	argFlat
	argDistance
	argAngle
	argTexture
	argOut
)

// Compositor runs the tunnel lookup as one OpenCL work item per pixel. The
// tables are uploaded once per generation and the texture once per texture.
type Compositor struct {
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel

	distanceBuf *cl.MemObject
	angleBuf    *cl.MemObject
	textureBuf  *cl.MemObject
	outBuf      *cl.MemObject

	tables     *tunnel.Tables
	texture    *tunnel.Texture
	outPixels  int
	deviceName string
}

var _ tunnel.Compositor = (*Compositor)(nil)

// New selects the first GPU (falling back to a CPU device) and builds the
// tunnel kernel.
func New() (*Compositor, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	c := &Compositor{deviceName: device.Name()}
	if c.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if c.queue, err = c.context.CreateCommandQueue(device, 0); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if c.program, err = c.context.CreateProgramWithSource([]string{tunnelKernelSource}); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := c.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		c.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if c.kernel, err = c.program.CreateKernel("tunnel"); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	return c, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (c *Compositor) Name() string { return "opencl" }

// DeviceName reports the OpenCL device in use.
func (c *Compositor) DeviceName() string { return c.deviceName }

// Composite renders one frame on the device and reads it back into dst.
func (c *Compositor) Composite(dst *tunnel.Surface, tex *tunnel.Texture, tables *tunnel.Tables, view tunnel.View) error {
	if err := c.syncTexture(tex); err != nil {
		return err
	}
	if err := c.syncTables(tables); err != nil {
		return err
	}
	if err := c.syncOutput(len(dst.Pixels)); err != nil {
		return err
	}

	shiftX, shiftY := tables.ClampShift(int(view.LookShiftX), int(view.LookShiftY))
	flat := int32(0)
	if view.Mode == tunnel.ModeFlat {
		flat = 1
	}
	if err := c.kernel.SetArgs(
		int32(dst.Width),
		int32(dst.Height),
		int32(tables.Width),
		int32(shiftX),
		int32(shiftY),
		view.Rotation,
		view.Translation,
		int32(tex.Size),
		int32(view.Color.Mask()),
		flat,
		c.distanceBuf,
		c.angleBuf,
		c.textureBuf,
		c.outBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := c.queue.EnqueueNDRangeKernel(c.kernel, nil, []int{len(dst.Pixels)}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	byteLen := len(dst.Pixels) * tunnel.BytesPerPixel
	if _, err := c.queue.EnqueueReadBuffer(c.outBuf, true, 0, byteLen, unsafe.Pointer(&dst.Pixels[0]), nil); err != nil {
		return fmt.Errorf("reading surface: %w", err)
	}
	return nil
}

func (c *Compositor) syncTexture(tex *tunnel.Texture) error {
	if c.texture == tex {
		return nil
	}
	release(&c.textureBuf)
	buf, err := c.upload(unsafe.Pointer(&tex.Texels[0]), len(tex.Texels))
	if err != nil {
		return fmt.Errorf("uploading texture: %w", err)
	}
	c.textureBuf = buf
	c.texture = tex
	return nil
}

func (c *Compositor) syncTables(tables *tunnel.Tables) error {
	if c.tables == tables {
		return nil
	}
	release(&c.distanceBuf)
	release(&c.angleBuf)
	c.tables = nil
	byteLen := len(tables.Distance) * int(unsafe.Sizeof(int32(0)))
	dist, err := c.upload(unsafe.Pointer(&tables.Distance[0]), byteLen)
	if err != nil {
		return fmt.Errorf("uploading distance table: %w", err)
	}
	c.distanceBuf = dist
	angle, err := c.upload(unsafe.Pointer(&tables.Angle[0]), byteLen)
	if err != nil {
		return fmt.Errorf("uploading angle table: %w", err)
	}
	c.angleBuf = angle
	c.tables = tables
	return nil
}

func (c *Compositor) syncOutput(pixels int) error {
	if c.outBuf != nil && c.outPixels == pixels {
		return nil
	}
	release(&c.outBuf)
	buf, err := c.context.CreateEmptyBuffer(cl.MemWriteOnly, pixels*tunnel.BytesPerPixel)
	if err != nil {
		return fmt.Errorf("allocating surface buffer: %w", err)
	}
	c.outBuf = buf
	c.outPixels = pixels
	return nil
}

func (c *Compositor) upload(ptr unsafe.Pointer, byteLen int) (*cl.MemObject, error) {
	buf, err := c.context.CreateEmptyBuffer(cl.MemReadOnly, byteLen)
	if err != nil {
		return nil, err
	}
	if _, err := c.queue.EnqueueWriteBuffer(buf, true, 0, byteLen, ptr, nil); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

func release(buf **cl.MemObject) {
	if *buf != nil {
		(*buf).Release()
		*buf = nil
	}
}

// Close releases every device object.
func (c *Compositor) Close() {
	release(&c.outBuf)
	release(&c.textureBuf)
	release(&c.angleBuf)
	release(&c.distanceBuf)
	if c.kernel != nil {
		c.kernel.Release()
		c.kernel = nil
	}
	if c.program != nil {
		c.program.Release()
		c.program = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.context != nil {
		c.context.Release()
		c.context = nil
	}
	c.tables = nil
	c.texture = nil
}
