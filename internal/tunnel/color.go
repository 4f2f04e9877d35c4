package tunnel

import (
	"fmt"
	"strings"
)

// Color selects which RGB channels the compositor lights for each texel.
type Color uint8

// The zero Color is unset and invalid.
const (
	ColorGreen Color = iota + 1
	ColorRed
	ColorBlue
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorWhite
	numColors
)

// DefaultColor is the color the view starts with and returns to on reset.
const DefaultColor = ColorWhite

const (
	redMask   uint32 = 0xFF0000
	greenMask uint32 = 0x00FF00
	blueMask  uint32 = 0x0000FF
)

var colorNames = [numColors]string{
	ColorGreen:   "green",
	ColorRed:     "red",
	ColorBlue:    "blue",
	ColorYellow:  "yellow",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
}

var colorMasks = [numColors]uint32{
	ColorGreen:   greenMask,
	ColorRed:     redMask,
	ColorBlue:    blueMask,
	ColorYellow:  redMask | greenMask,
	ColorMagenta: redMask | blueMask,
	ColorCyan:    blueMask | greenMask,
	ColorWhite:   redMask | greenMask | blueMask,
}

// Colors lists the defined colors in order.
var Colors = []Color{ColorGreen, ColorRed, ColorBlue, ColorYellow, ColorMagenta, ColorCyan, ColorWhite}

// Valid reports whether c is one of the seven defined colors.
func (c Color) Valid() bool { return c >= ColorGreen && c < numColors }

// Mask returns the channel mask applied to a grey texel (c<<16|c<<8|c).
// An out-of-range color is a programming error.
func (c Color) Mask() uint32 {
	if !c.Valid() {
		panic(fmt.Sprintf("tunnel: %v: %d", ErrInvalidColor, uint8(c)))
	}
	return colorMasks[c]
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// ParseColor maps a case-insensitive color name to its Color.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Colors {
		if colorNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Shade expands an intensity into a 0x00RRGGBB pixel restricted to the
// channels selected by c.
func Shade(intensity uint8, c Color) uint32 {
	v := uint32(intensity)
	return (v<<16 | v<<8 | v) & c.Mask()
}
