package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tunnelrunner/internal/accel"
	"tunnelrunner/internal/texfile"
	"tunnelrunner/internal/tunnel"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("tunnel: %v", err)
	}
}

func run() error {
	stopProfile, err := startCPUProfile(*cpuProfileFlag)
	if err != nil {
		return err
	}
	defer stopProfile()

	if *upsFlag <= 0 || *fpsFlag <= 0 {
		return fmt.Errorf("-ups and -fps must be positive (got %d and %d)", *upsFlag, *fpsFlag)
	}
	color, err := tunnel.ParseColor(*colorFlag)
	if err != nil {
		return err
	}
	tex, err := loadTexture()
	if err != nil {
		return err
	}

	opts := tunnel.RendererOptions{Ratio: *ratioFlag}
	if *openCLFlag {
		comp, err := accel.New()
		if err != nil {
			log.Printf("OpenCL unavailable, compositing on the CPU: %v", err)
		} else {
			log.Printf("OpenCL compositor enabled (device: %s)", comp.DeviceName())
			defer comp.Close()
			opts.Compositor = comp
		}
	}
	if opts.Compositor == nil && *workersFlag != 1 {
		pc := tunnel.NewParallelCompositor(*workersFlag)
		defer pc.Close()
		log.Printf("Compositing on %d CPU workers", pc.Workers())
		opts.Compositor = pc
	}
	r, err := tunnel.NewRenderer(*widthFlag, *heightFlag, tex, opts)
	if err != nil {
		return err
	}

	cfg := tunnel.DriverConfig{
		Step:  time.Second / time.Duration(*upsFlag),
		Frame: time.Second / time.Duration(*fpsFlag),
		Color: color,
		Debug: *debugFlag,
	}
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if *headlessFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runHeadless(ctx, r, cfg, seed)
	}
	return runWindow(r, cfg, seed)
}

func loadTexture() (*tunnel.Texture, error) {
	if *textureFileFlag != "" {
		return texfile.Load(*textureFileFlag, *texSizeFlag)
	}
	pattern, err := tunnel.ParsePattern(*textureFlag)
	if err != nil {
		return nil, err
	}
	return tunnel.NewTexture(*texSizeFlag, pattern)
}

func runWindow(r *tunnel.Renderer, cfg tunnel.DriverConfig, seed int64) error {
	g := newGame(r, cfg, *resizableFlag)
	if *autopilotFlag > 0 {
		g.input.enableAutopilot(seed, *autopilotFlag)
	}
	if *enableAudioFlag {
		h, err := startHum(*humWAVFlag)
		if err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			defer h.Close()
			g.hum = h
		}
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	if *resizableFlag {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(*fpsFlag)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
