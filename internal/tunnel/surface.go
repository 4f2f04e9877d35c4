package tunnel

import "fmt"

// BytesPerPixel is the size of one surface cell.
const BytesPerPixel = 4

// Surface is the output frame: one 0x00RRGGBB cell per pixel, rows packed
// with no padding.
type Surface struct {
	Width  int
	Height int
	// Pitch is the row length in bytes and always equals Width*BytesPerPixel.
	Pitch  int
	Pixels []uint32
}

// NewSurface allocates a zeroed surface.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface %dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Surface{
		Width:  width,
		Height: height,
		Pitch:  width * BytesPerPixel,
		Pixels: make([]uint32, width*height),
	}, nil
}

// At returns the pixel at (x, y).
func (s *Surface) At(x, y int) uint32 {
	return s.Pixels[y*s.Width+x]
}

// AppendRGBA appends the surface as RGBA bytes (alpha forced opaque) to dst
// and returns the extended slice. Passing dst[:0] reuses its storage.
func (s *Surface) AppendRGBA(dst []byte) []byte {
	n := len(dst)
	need := n + len(s.Pixels)*BytesPerPixel
	if cap(dst) < need {
		grown := make([]byte, n, need)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:need]
	out := dst[n:]
	for i, p := range s.Pixels {
		base := i * BytesPerPixel
		out[base] = byte(p >> 16)
		out[base+1] = byte(p >> 8)
		out[base+2] = byte(p)
		out[base+3] = 0xFF
	}
	return dst
}
