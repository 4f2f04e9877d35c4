package tunnel

import (
	"fmt"
	"math"
)

// DefaultRatio controls the apparent depth scaling of the tunnel.
const DefaultRatio = 32.0

// Tables hold the polar lookup for every pixel/look-shift combination of a
// surface. They are twice the surface size in each dimension and centred on
// (SurfaceWidth, SurfaceHeight), so a surface pixel offset by any look shift
// in [0,SurfaceWidth]×[0,SurfaceHeight] indexes them without bounds checks.
type Tables struct {
	Width         int
	Height        int
	SurfaceWidth  int
	SurfaceHeight int
	TextureSize   int
	Ratio         float64

	// Distance and Angle are row-major: index = y*Width + x.
	Distance []int32
	Angle    []int32
}

// NewTables computes the distance and angle tables for a width×height
// surface sampling a texture of textureSize texels per side.
//
// The centre cell has no defined distance; it takes the value of a cell at
// radius 1 so the table never holds an infinity-derived value.
func NewTables(width, height, textureSize int, ratio float64) (*Tables, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tables for %dx%d: %w", width, height, ErrInvalidSize)
	}
	if textureSize <= 0 {
		return nil, fmt.Errorf("tables texture size %d: %w", textureSize, ErrInvalidSize)
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = DefaultRatio
	}
	tw, th := 2*width, 2*height
	t := &Tables{
		Width:         tw,
		Height:        th,
		SurfaceWidth:  width,
		SurfaceHeight: height,
		TextureSize:   textureSize,
		Ratio:         ratio,
		Distance:      make([]int32, tw*th),
		Angle:         make([]int32, tw*th),
	}
	depth := ratio * float64(textureSize)
	sweep := 0.5 * float64(textureSize) / math.Pi
	size := int64(textureSize)
	for y := 0; y < th; y++ {
		dy := float64(y - height)
		base := y * tw
		for x := 0; x < tw; x++ {
			dx := float64(x - width)
			r := math.Sqrt(dx*dx + dy*dy)
			if r < 1 {
				r = 1
			}
			t.Distance[base+x] = int32(int64(math.Floor(depth/r)) % size)
			t.Angle[base+x] = int32(math.Floor(sweep * math.Atan2(dy, dx)))
		}
	}
	return t, nil
}

// Center returns the look shift that puts the tunnel's vanishing point in
// the middle of the surface.
func (t *Tables) Center() (int, int) {
	return t.SurfaceWidth / 2, t.SurfaceHeight / 2
}

// ClampShift limits a look shift to the range the tables cover.
func (t *Tables) ClampShift(x, y int) (int, int) {
	return clampInt(x, 0, t.SurfaceWidth), clampInt(y, 0, t.SurfaceHeight)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
