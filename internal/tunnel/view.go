package tunnel

// MovementSpeed is the per-step offset change of the coarse controls.
const MovementSpeed = 5

// stickDivisor scales a left stick deflection into a per-step offset.
const stickDivisor = 5000

// Mode selects how the texture is mapped onto the surface.
type Mode uint8

const (
	// ModeTunnel maps the texture through the polar tables.
	ModeTunnel Mode = iota
	// ModeFlat tiles the texture across the surface, scrolled by the offsets.
	ModeFlat
)

func (m Mode) String() string {
	if m == ModeFlat {
		return "flat"
	}
	return "tunnel"
}

// View is the simulated viewpoint. It is changed only by Step.
type View struct {
	Rotation    int32
	Translation int32
	LookShiftX  int32
	LookShiftY  int32
	Color       Color
	Mode        Mode
}

// NewView returns a view looking down the middle of a width×height surface.
func NewView(width, height int, c Color) View {
	return View{
		LookShiftX: int32(width / 2),
		LookShiftY: int32(height / 2),
		Color:      c,
	}
}

// Step applies one input sample. width and height are the current surface
// dimensions used to map the right stick onto the look shift. It reports
// whether the input asked to quit.
func (v *View) Step(in Input, width, height int) bool {
	quit := in.Quit
	k := in.Keys
	if k.RotateLeft {
		v.Rotation -= MovementSpeed
	}
	if k.RotateRight {
		v.Rotation += MovementSpeed
	}
	if k.Forward {
		v.Translation += MovementSpeed
	}
	if k.Back {
		v.Translation -= MovementSpeed
	}
	if k.FineLeft {
		v.Rotation--
	}
	if k.FineRight {
		v.Rotation++
	}
	if k.FineForward {
		v.Translation++
	}
	if k.FineBack {
		v.Translation--
	}

	for i, pad := range in.Pads {
		if i >= MaxPads {
			break
		}
		if pad.Buttons.Has(ButtonStart) {
			v.Color = DefaultColor
		}
		if pad.Buttons.Has(ButtonBack) {
			quit = true
		}
		for _, pc := range padColors {
			if pad.Buttons.Has(pc.button) {
				v.Color = pc.color
			}
		}
		v.Rotation += int32(pad.LeftX) / stickDivisor
		v.Translation -= int32(pad.LeftY) / stickDivisor
		v.LookShiftX = int32(width/2) + remapStick(pad.RightX, width/2)
		v.LookShiftY = int32(height/2) + remapStick(pad.RightY, height/2)
	}

	if in.ResetColor {
		v.Color = DefaultColor
	}
	for _, c := range in.Colors {
		if c.Valid() {
			v.Color = c
		}
	}
	if in.ToggleMode {
		if v.Mode == ModeTunnel {
			v.Mode = ModeFlat
		} else {
			v.Mode = ModeTunnel
		}
	}
	return quit
}

// remapStick linearly maps an axis from [StickMin, StickMax] onto
// [-half, half] using integer arithmetic.
func remapStick(axis int16, half int) int32 {
	lo, hi := int64(-half), int64(half)
	v := (int64(axis)-StickMin)*(hi-lo)/(StickMax-StickMin) + lo
	return int32(v)
}
