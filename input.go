package main

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tunnelrunner/internal/tunnel"
)

// colorKeys maps the number row onto the color enumeration.
var colorKeys = [...]struct {
	key   ebiten.Key
	color tunnel.Color
}{
	{ebiten.Key1, tunnel.ColorGreen},
	{ebiten.Key2, tunnel.ColorRed},
	{ebiten.Key3, tunnel.ColorBlue},
	{ebiten.Key4, tunnel.ColorYellow},
	{ebiten.Key5, tunnel.ColorMagenta},
	{ebiten.Key6, tunnel.ColorCyan},
	{ebiten.Key7, tunnel.ColorWhite},
}

var padButtons = [...]struct {
	button ebiten.StandardGamepadButton
	pad    tunnel.PadButtons
}{
	{ebiten.StandardGamepadButtonRightBottom, tunnel.ButtonA},
	{ebiten.StandardGamepadButtonRightRight, tunnel.ButtonB},
	{ebiten.StandardGamepadButtonRightLeft, tunnel.ButtonX},
	{ebiten.StandardGamepadButtonRightTop, tunnel.ButtonY},
	{ebiten.StandardGamepadButtonFrontTopLeft, tunnel.ButtonLeftShoulder},
	{ebiten.StandardGamepadButtonFrontTopRight, tunnel.ButtonRightShoulder},
	{ebiten.StandardGamepadButtonCenterRight, tunnel.ButtonStart},
	{ebiten.StandardGamepadButtonCenterLeft, tunnel.ButtonBack},
}

// inputSource samples ebiten's keyboard and gamepads. Held state is reported
// on every Poll; one-shot events gathered by sample are reported once, on
// the first Poll after they happen.
type inputSource struct {
	pending tunnel.Input
	held    tunnel.Input

	gamepadIDs []ebiten.GamepadID
	warnedPads map[ebiten.GamepadID]bool
	focused    bool

	autopilot         *tunnel.Autopilot
	autopilotDeadline time.Time
}

func newInputSource() *inputSource {
	return &inputSource{
		warnedPads: make(map[ebiten.GamepadID]bool),
		focused:    true,
	}
}

// enableAutopilot flies a scripted course until the duration runs out.
func (s *inputSource) enableAutopilot(seed int64, duration time.Duration) {
	s.autopilot = tunnel.NewAutopilot(seed)
	s.autopilotDeadline = time.Now().Add(duration)
	log.Printf("Autopilot engaged for %s (seed %d)", duration, seed)
}

// requestResize queues a surface rebuild for the next step.
func (s *inputSource) requestResize(width, height int) {
	s.pending.Resize = &tunnel.Size{Width: width, Height: height}
}

// sample reads device state once per ebiten tick.
func (s *inputSource) sample() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.pending.Quit = true
	}
	if focused := ebiten.IsFocused(); focused != s.focused {
		s.focused = focused
		if focused {
			s.pending.Focused = true
		}
	}
	for _, ck := range colorKeys {
		if inpututil.IsKeyJustPressed(ck.key) {
			s.pending.Colors = append(s.pending.Colors, ck.color)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.pending.ResetColor = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.pending.ToggleMode = !s.pending.ToggleMode
	}

	s.held.Keys = tunnel.Keys{
		RotateLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		RotateRight: ebiten.IsKeyPressed(ebiten.KeyD),
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW),
		Back:        ebiten.IsKeyPressed(ebiten.KeyS),
		FineLeft:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		FineRight:   ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		FineForward: ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		FineBack:    ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
	s.samplePads()
}

func (s *inputSource) samplePads() {
	s.gamepadIDs = ebiten.AppendGamepadIDs(s.gamepadIDs[:0])
	s.held.Pads = s.held.Pads[:0]
	for _, id := range s.gamepadIDs {
		if len(s.held.Pads) == tunnel.MaxPads {
			break
		}
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			if !s.warnedPads[id] {
				s.warnedPads[id] = true
				log.Printf("Gamepad %d (%s) has no standard layout; ignoring it", id, ebiten.GamepadName(id))
			}
			continue
		}
		pad := tunnel.Pad{
			LeftX:  axisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			LeftY:  axisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
			RightX: axisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
			RightY: axisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
		}
		for _, b := range padButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, b.button) {
				pad.Buttons |= b.pad
			}
		}
		s.held.Pads = append(s.held.Pads, pad)
		s.rumble(id)
	}
}

// rumble starts vibration when START goes down and stops it on release.
func (s *inputSource) rumble(id ebiten.GamepadID) {
	switch {
	case inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight):
		ebiten.VibrateGamepad(id, &ebiten.VibrateGamepadOptions{
			Duration:        rumbleDuration,
			StrongMagnitude: rumbleMagnitude,
			WeakMagnitude:   rumbleMagnitude,
		})
	case inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonCenterRight):
		ebiten.VibrateGamepad(id, &ebiten.VibrateGamepadOptions{})
	}
}

// axisValue converts an axis in [-1, 1] to the int16 stick range.
func axisValue(id ebiten.GamepadID, axis ebiten.StandardGamepadAxis) int16 {
	v := math.Round(ebiten.StandardGamepadAxisValue(id, axis) * axisScale)
	return int16(max(-axisScale-1, min(axisScale, v)))
}

// Poll implements the driver's input side.
func (s *inputSource) Poll() tunnel.Input {
	in := s.held
	if s.autopilot != nil {
		if time.Now().Before(s.autopilotDeadline) {
			in = s.autopilot.Next()
		} else {
			s.autopilot = nil
			log.Printf("Autopilot disengaged")
		}
	}
	p := s.pending
	in.Quit = in.Quit || p.Quit
	in.Resize = p.Resize
	in.Focused = p.Focused
	in.Colors = append(in.Colors, p.Colors...)
	in.ResetColor = in.ResetColor || p.ResetColor
	in.ToggleMode = in.ToggleMode != p.ToggleMode
	s.pending = tunnel.Input{Colors: s.pending.Colors[:0]}
	return in
}
