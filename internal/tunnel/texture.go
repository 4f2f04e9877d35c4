package tunnel

import (
	"fmt"
	"strings"
)

// Texture is a square grey-scale bitmap. It is never written after
// construction, so it may be shared between renderers.
type Texture struct {
	Size   int
	Texels []uint8
}

// Pattern generates the texel at (x, y) for a texture of the given size.
type Pattern func(x, y, size int) uint8

// XORPattern is the classic x^y texture scaled to 256 intensity levels.
func XORPattern(x, y, size int) uint8 {
	return uint8((x * 256 / size) ^ (y * 256 / size))
}

// MosaicPattern squares the 8-bit wrapped coordinates of each texel.
func MosaicPattern(x, y, _ int) uint8 {
	xf := uint8(x)
	yf := uint8(y)
	return xf * xf * yf * yf
}

// ParsePattern resolves a pattern name accepted on the command line.
func ParsePattern(name string) (Pattern, error) {
	switch strings.ToLower(name) {
	case "", "xor":
		return XORPattern, nil
	case "mosaic":
		return MosaicPattern, nil
	}
	return nil, fmt.Errorf("unknown texture pattern %q", name)
}

// NewTexture builds a size×size texture from p.
func NewTexture(size int, p Pattern) (*Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("texture size %d: %w", size, ErrInvalidSize)
	}
	t := &Texture{Size: size, Texels: make([]uint8, size*size)}
	for y := 0; y < size; y++ {
		row := t.Texels[y*size : (y+1)*size]
		for x := range row {
			row[x] = p(x, y, size)
		}
	}
	return t, nil
}

// At returns the texel at (x, y).
func (t *Texture) At(x, y int) uint8 {
	return t.Texels[y*t.Size+x]
}
