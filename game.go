package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tunnelrunner/internal/snapshot"
	"tunnelrunner/internal/tunnel"
)

// Game connects the tunnel driver to ebiten. Each ebiten tick runs one
// driver frame; the driver decides how many fixed steps that frame gets.
type Game struct {
	driver   *tunnel.Driver
	renderer *tunnel.Renderer
	input    *inputSource

	frame  *ebiten.Image
	pixels []byte

	resizable      bool
	layoutW        int
	layoutH        int
	requestedSizeW int
	requestedSizeH int

	hum *humPlayer
}

// newGame builds the window host around r.
func newGame(r *tunnel.Renderer, cfg tunnel.DriverConfig, resizable bool) *Game {
	s := r.Surface()
	g := &Game{
		renderer:       r,
		input:          newInputSource(),
		resizable:      resizable,
		layoutW:        s.Width,
		layoutH:        s.Height,
		requestedSizeW: s.Width,
		requestedSizeH: s.Height,
	}
	g.driver = tunnel.NewDriver(r, g, cfg)
	return g
}

// Poll implements tunnel.Host.
func (g *Game) Poll() tunnel.Input { return g.input.Poll() }

// Present copies the finished surface into the frame image drawn by Draw.
func (g *Game) Present(s *tunnel.Surface) error {
	if g.frame == nil || g.frame.Bounds().Dx() != s.Width || g.frame.Bounds().Dy() != s.Height {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(s.Width, s.Height)
	}
	g.pixels = s.AppendRGBA(g.pixels[:0])
	if len(g.pixels) != 4*s.Width*s.Height {
		return fmt.Errorf("surface produced %d bytes for %dx%d", len(g.pixels), s.Width, s.Height)
	}
	g.frame.WritePixels(g.pixels)
	return nil
}

// Update samples input and runs one driver frame.
func (g *Game) Update() error {
	g.input.sample()
	before := g.driver.View().Translation
	quit := g.driver.Frame()
	if g.hum != nil {
		g.hum.follow(before, g.driver.View().Translation, g.driver.Stats().LastSteps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.saveScreenshot()
	}
	if quit {
		return ebiten.Termination
	}
	return nil
}

// saveScreenshot writes the current surface as a PNG in the working
// directory.
func (g *Game) saveScreenshot() {
	path := screenshotPrefix + time.Now().Format("20060102-150405") + ".png"
	if err := writeSnapshot(path, g.renderer.Surface()); err != nil {
		log.Printf("Screenshot failed: %v", err)
		return
	}
	log.Printf("Saved %s", path)
}

// writeSnapshot encodes s to path in the format named by its extension.
func writeSnapshot(path string, s *tunnel.Surface) error {
	format, err := snapshot.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Encode(f, snapshot.Image(s), format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
