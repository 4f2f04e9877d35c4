// Package texfile builds tunnel textures from image files.
package texfile

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"tunnelrunner/internal/tunnel"
)

// Load decodes the PNG, JPEG, TGA or WebP image at path and resamples it
// into a size×size grey texture.
func Load(path string, size int) (*tunnel.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return FromImage(img, size)
}

// FromImage resamples img to size×size and keeps its luminance.
func FromImage(img image.Image, size int) (*tunnel.Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("texture size %d: %w", size, tunnel.ErrInvalidSize)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("texture image %v: %w", b, tunnel.ErrInvalidSize)
	}
	gray := image.NewGray(image.Rect(0, 0, size, size))
	if b.Dx() == size && b.Dy() == size {
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(gray, gray.Bounds(), img, b, draw.Src, nil)
	}
	tex := &tunnel.Texture{Size: size, Texels: make([]uint8, size*size)}
	for y := 0; y < size; y++ {
		copy(tex.Texels[y*size:(y+1)*size], gray.Pix[y*gray.Stride:])
	}
	return tex, nil
}
