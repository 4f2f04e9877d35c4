package tunnel

import (
	"errors"
	"testing"
)

func TestXORTexture(t *testing.T) {
	tex, err := NewTexture(256, XORPattern)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	for _, p := range [][2]int{{0, 0}, {255, 0}, {17, 42}, {255, 255}, {128, 127}} {
		want := uint8(p[0] ^ p[1])
		if got := tex.At(p[0], p[1]); got != want {
			t.Errorf("At(%d,%d) = %d, want %d", p[0], p[1], got, want)
		}
	}
}

func TestXORTextureScalesSmallSizes(t *testing.T) {
	tex, err := NewTexture(4, XORPattern)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	// x=1 -> 64, y=2 -> 128
	if got := tex.At(1, 2); got != 64^128 {
		t.Errorf("At(1,2) = %d, want %d", got, 64^128)
	}
}

func TestMosaicPatternWraps(t *testing.T) {
	if got := MosaicPattern(3, 5, 256); got != uint8(3*3*5*5) {
		t.Errorf("MosaicPattern(3,5) = %d", got)
	}
	// 256 wraps to 0 before squaring.
	if got := MosaicPattern(256, 7, 512); got != 0 {
		t.Errorf("MosaicPattern(256,7) = %d, want 0", got)
	}
}

func TestParsePattern(t *testing.T) {
	for _, name := range []string{"", "xor", "XOR", "mosaic"} {
		if _, err := ParsePattern(name); err != nil {
			t.Errorf("ParsePattern(%q): %v", name, err)
		}
	}
	if _, err := ParsePattern("plasma"); err == nil {
		t.Error("ParsePattern(plasma) succeeded")
	}
}

func TestNewTextureInvalidSize(t *testing.T) {
	if _, err := NewTexture(0, XORPattern); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("NewTexture(0) err = %v, want ErrInvalidSize", err)
	}
}
