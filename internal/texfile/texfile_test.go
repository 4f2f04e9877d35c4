package texfile

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tunnelrunner/internal/tunnel"
)

func TestFromImageSameSize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 16)
	}
	tex, err := FromImage(img, 4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(img.Pix, tex.Texels); diff != "" {
		t.Errorf("texels (-want +got):\n%s", diff)
	}
}

func TestFromImageUsesLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, red)
		}
	}
	tex, err := FromImage(img, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := color.GrayModel.Convert(red).(color.Gray).Y
	for i, v := range tex.Texels {
		if v != want {
			t.Errorf("texel %d = %d, want %d", i, v, want)
		}
	}
}

func TestFromImageResamples(t *testing.T) {
	img := image.NewGray(image.Rect(10, 10, 13, 13))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	tex, err := FromImage(img, 9)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Size != 9 || len(tex.Texels) != 81 {
		t.Fatalf("texture size %d with %d texels", tex.Size, len(tex.Texels))
	}
	for i, v := range tex.Texels {
		if v < 199 || v > 201 {
			t.Errorf("texel %d = %d, want about 200", i, v)
		}
	}
}

func TestFromImageInvalid(t *testing.T) {
	if _, err := FromImage(image.NewGray(image.Rect(0, 0, 2, 2)), 0); !errors.Is(err, tunnel.ErrInvalidSize) {
		t.Errorf("size 0: err = %v", err)
	}
	if _, err := FromImage(image.NewGray(image.Rectangle{}), 8); !errors.Is(err, tunnel.ErrInvalidSize) {
		t.Errorf("empty image: err = %v", err)
	}
}

func TestLoadPNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	tex, err := Load(path, 8)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(img.Pix, tex.Texels); diff != "" {
		t.Errorf("texels (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png"), 8); err == nil {
		t.Error("Load of missing file succeeded")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(junk, 8); err == nil {
		t.Error("Load of junk succeeded")
	}
}
