package tunnel

import (
	"context"
	"log"
	"time"
)

// Reference rates: input is sampled 120 times a second and frames are
// capped at 60 per second.
const (
	DefaultStep  = time.Second / 120
	DefaultFrame = time.Second / 60
)

// Host is the windowing side of the loop.
type Host interface {
	// Poll samples events and device state once. It must not block.
	Poll() Input
	// Present hands a finished frame to the display.
	Present(s *Surface) error
}

// DriverConfig configures a Driver. Zero values select defaults.
type DriverConfig struct {
	Step  time.Duration
	Frame time.Duration
	Color Color

	Now   func() time.Time
	Sleep func(time.Duration)
	Logf  func(format string, args ...any)
	Debug bool
}

// Stats describes the driver's progress, mainly for the debug overlay.
type Stats struct {
	Frames    uint64
	Steps     uint64
	LastSteps int
	Elapsed   time.Duration
	Lag       time.Duration
}

// Driver runs the fixed timestep loop: elapsed wall time accumulates as lag,
// lag drains in fixed steps that each consume one input sample, and one
// frame is rendered per iteration regardless of how many steps ran.
type Driver struct {
	cfg      DriverConfig
	renderer *Renderer
	host     Host
	view     View

	started bool
	prev    time.Time
	lag     time.Duration
	quit    bool
	stats   Stats
}

// NewDriver prepares a driver whose view starts centred on the renderer's
// surface.
func NewDriver(r *Renderer, host Host, cfg DriverConfig) *Driver {
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Frame <= 0 {
		cfg.Frame = DefaultFrame
	}
	if !cfg.Color.Valid() {
		cfg.Color = DefaultColor
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	s := r.Surface()
	return &Driver{
		cfg:      cfg,
		renderer: r,
		host:     host,
		view:     NewView(s.Width, s.Height, cfg.Color),
	}
}

// Frame runs one iteration of the outer loop without sleeping and reports
// whether a quit request has been seen. Hosts that pace frames themselves
// call Frame directly.
func (d *Driver) Frame() bool {
	now := d.cfg.Now()
	if !d.started {
		d.started = true
		d.prev = now
	}
	elapsed := now.Sub(d.prev)
	if elapsed < 0 {
		elapsed = 0
	}
	d.prev = now
	d.lag += elapsed

	steps := 0
	for d.lag >= d.cfg.Step {
		d.apply(d.host.Poll())
		d.lag -= d.cfg.Step
		steps++
	}

	if err := d.renderer.Render(d.view); err != nil {
		d.cfg.Logf("render: %v", err)
	}
	if err := d.host.Present(d.renderer.Surface()); err != nil {
		d.cfg.Logf("present: %v", err)
	}

	d.stats.Frames++
	d.stats.Steps += uint64(steps)
	d.stats.LastSteps = steps
	d.stats.Elapsed = elapsed
	d.stats.Lag = d.lag
	return d.quit
}

// Run loops until a quit request or ctx is done, sleeping after each frame
// that finished inside the frame budget.
func (d *Driver) Run(ctx context.Context) error {
	for !d.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Frame()
		if d.stats.Elapsed <= d.cfg.Frame {
			d.cfg.Sleep(d.cfg.Frame - d.stats.Elapsed)
		}
	}
	return nil
}

func (d *Driver) apply(in Input) {
	if in.Resize != nil {
		d.resize(in.Resize.Width, in.Resize.Height)
	}
	if in.Focused && d.cfg.Debug {
		d.cfg.Logf("focus gained")
	}
	s := d.renderer.Surface()
	if d.view.Step(in, s.Width, s.Height) {
		d.quit = true
	}
}

func (d *Driver) resize(width, height int) {
	old := d.renderer.Surface()
	if old.Width == width && old.Height == height {
		return
	}
	if err := d.renderer.Resize(width, height); err != nil {
		d.cfg.Logf("resize to %dx%d: %v", width, height, err)
		return
	}
	x, y := d.renderer.Tables().Center()
	d.view.LookShiftX, d.view.LookShiftY = int32(x), int32(y)
	if d.cfg.Debug {
		d.cfg.Logf("surface resized to %dx%d", width, height)
	}
}

// View returns the current simulated view.
func (d *Driver) View() View { return d.view }

// Stats returns counters from the most recent frame.
func (d *Driver) Stats() Stats { return d.stats }

// Quit reports whether a quit request has been seen.
func (d *Driver) Quit() bool { return d.quit }

// RequestQuit stops Run after the current frame.
func (d *Driver) RequestQuit() { d.quit = true }
