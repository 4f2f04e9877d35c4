package tunnel

// MaxPads is the number of gamepads sampled per step.
const MaxPads = 4

// Stick range of a gamepad axis. The range is slightly wider than int16 so
// a fully deflected stick never maps exactly onto the edge of the surface.
const (
	StickMin = -32770
	StickMax = 32770
)

// Keys is a snapshot of the directional keys held during a step.
type Keys struct {
	RotateLeft  bool
	RotateRight bool
	Forward     bool
	Back        bool

	FineLeft    bool
	FineRight   bool
	FineForward bool
	FineBack    bool
}

// PadButtons is a bit set of gamepad buttons.
type PadButtons uint16

const (
	ButtonA PadButtons = 1 << iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonStart
	ButtonBack
)

// Has reports whether every button in b is held.
func (p PadButtons) Has(b PadButtons) bool { return p&b == b }

// padColors lists the color buttons in the order they are checked; a later
// entry overrides an earlier one within the same step.
var padColors = [...]struct {
	button PadButtons
	color  Color
}{
	{ButtonA, ColorGreen},
	{ButtonB, ColorRed},
	{ButtonX, ColorBlue},
	{ButtonY, ColorYellow},
	{ButtonLeftShoulder, ColorMagenta},
	{ButtonRightShoulder, ColorCyan},
}

// Pad is the state of one attached gamepad. Axis values use the native
// int16 range.
type Pad struct {
	LeftX   int16
	LeftY   int16
	RightX  int16
	RightY  int16
	Buttons PadButtons
}

// Size is a surface size carried by a resize notification.
type Size struct {
	Width  int
	Height int
}

// Input is everything sampled from the host for one simulation step.
type Input struct {
	// Quit requests loop termination.
	Quit bool
	// Resize, when non-nil, asks for the surface and tables to be rebuilt.
	Resize *Size
	// Focused is set when the window gained focus since the previous sample.
	Focused bool

	Keys Keys
	Pads []Pad

	// Colors are applied in order after the pads; the last one wins.
	Colors     []Color
	ResetColor bool
	ToggleMode bool
}
