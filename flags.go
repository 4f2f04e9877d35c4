package main

import "flag"

// Command-line flags for the window, the engine and optional features.
var (
	// widthFlag and heightFlag set the initial surface size.
	widthFlag  = flag.Int("width", defaultWidth, "initial surface width in pixels")
	heightFlag = flag.Int("height", defaultHeight, "initial surface height in pixels")

	// resizableFlag lets the window be resized; the tables follow the new size.
	resizableFlag = flag.Bool("resizable", true, "allow resizing the window")

	texSizeFlag = flag.Int("tex-size", defaultTextureSize, "texture side length in texels")

	// textureFlag picks the texture generator.
	textureFlag = flag.String("texture", "xor", "texture pattern: xor or mosaic")

	// textureFileFlag loads the texture from an image instead of a pattern.
	textureFileFlag = flag.String("texture-file", "", "PNG, JPEG, TGA or WebP image used as the texture")

	// ratioFlag controls how quickly the tunnel recedes.
	ratioFlag = flag.Float64("ratio", defaultRatio, "tunnel depth ratio")

	colorFlag = flag.String("color", "white", "initial color: green, red, blue, yellow, magenta, cyan or white")

	// upsFlag is the number of fixed simulation steps per second.
	upsFlag = flag.Int("ups", defaultUPS, "simulation steps per second")

	// fpsFlag caps presented frames per second.
	fpsFlag = flag.Int("fps", defaultFPS, "frame rate cap")

	// openCLFlag requests the OpenCL compositor; the CPU path is used if it
	// cannot be initialised.
	openCLFlag = flag.Bool("opencl", false, "composite frames with OpenCL when available")

	// workersFlag sets how many goroutines share the CPU compositing work.
	workersFlag = flag.Int("workers", 0, "CPU compositor goroutines (0: one per CPU, 1: single-threaded)")

	// debugFlag enables the overlay and resize/focus logging.
	debugFlag = flag.Bool("debug", false, "show FPS and view overlay, log window events")

	// autopilotFlag flies a scripted course for the given duration.
	autopilotFlag = flag.Duration("autopilot", 0, "fly a scripted course for this long (e.g. 15s)")

	seedFlag = flag.Int64("seed", 0, "autopilot seed (0 picks one from the clock)")

	// headlessFlag runs the loop without opening a window.
	headlessFlag = flag.Bool("headless", false, "run without a window using the autopilot")
	framesFlag   = flag.Uint64("frames", 0, "stop headless runs after this many frames (0 runs until the autopilot ends)")
	snapshotFlag = flag.String("snapshot", "", "write the last headless frame to this .png or .webp file")

	// enableAudioFlag plays a drone that follows flight speed.
	enableAudioFlag = flag.Bool("enable-audio", false, "play an engine hum that follows flight speed")
	humWAVFlag      = flag.String("hum-wav", "", "WAV loop mixed under the engine hum")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
)
