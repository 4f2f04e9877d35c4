package main

import "time"

// Window, timing and audio constants.
const (
	windowTitle        = "Tunnel"
	defaultWidth       = 640
	defaultHeight      = 480
	defaultTextureSize = 256
	defaultRatio       = 32.0
	defaultUPS         = 120
	defaultFPS         = 60

	// Gamepad START rumble.
	rumbleDuration  = 2 * time.Second
	rumbleMagnitude = 0.5

	audioBufferDuration = 80 * time.Millisecond

	// Full deflection of a gamepad axis in the int16 stick range.
	axisScale = 32767

	screenshotPrefix = "tunnel-"
)
