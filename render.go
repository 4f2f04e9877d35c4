package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw scales the last presented frame onto the screen. The two differ in
// size only between a window resize and the step that rebuilds the surface.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		op := &ebiten.DrawImageOptions{}
		fb, sb := g.frame.Bounds(), screen.Bounds()
		if fb.Dx() != sb.Dx() || fb.Dy() != sb.Dy() {
			op.GeoM.Scale(float64(sb.Dx())/float64(fb.Dx()), float64(sb.Dy())/float64(fb.Dy()))
		}
		screen.DrawImage(g.frame, op)
	}

	if *debugFlag {
		v := g.driver.View()
		st := g.driver.Stats()
		s := g.renderer.Surface()
		debugMsg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nSteps: %d/frame (%d total)  Lag: %s\nSurface: %dx%d  Backend: %s\nRotation: %d  Translation: %d\nLook: %d,%d  Color: %s  Mode: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			st.LastSteps, st.Steps, st.Lag,
			s.Width, s.Height, g.renderer.CompositorName(),
			v.Rotation, v.Translation,
			v.LookShiftX, v.LookShiftY, v.Color, v.Mode)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout follows the window size when resizing is enabled and asks the
// driver to rebuild the surface to match.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.resizable || outsideWidth <= 0 || outsideHeight <= 0 {
		return g.layoutW, g.layoutH
	}
	if outsideWidth != g.requestedSizeW || outsideHeight != g.requestedSizeH {
		g.requestedSizeW, g.requestedSizeH = outsideWidth, outsideHeight
		g.input.requestResize(outsideWidth, outsideHeight)
	}
	g.layoutW, g.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
