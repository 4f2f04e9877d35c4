package main

import (
	"context"
	"errors"
	"log"
	"time"

	"tunnelrunner/internal/tunnel"
)

// headlessHost feeds the driver from the autopilot and counts frames
// instead of displaying them.
type headlessHost struct {
	autopilot *tunnel.Autopilot
	deadline  time.Time
	frames    uint64
	limit     uint64
	cancel    context.CancelFunc
}

func (h *headlessHost) Poll() tunnel.Input {
	in := h.autopilot.Next()
	if !h.deadline.IsZero() && !time.Now().Before(h.deadline) {
		in.Quit = true
	}
	return in
}

func (h *headlessHost) Present(*tunnel.Surface) error {
	h.frames++
	if h.limit > 0 && h.frames >= h.limit {
		h.cancel()
	}
	return nil
}

// runHeadless drives the renderer without a window until the frame limit,
// the autopilot duration or ctx ends the run.
func runHeadless(ctx context.Context, r *tunnel.Renderer, cfg tunnel.DriverConfig, seed int64) error {
	if *framesFlag == 0 && *autopilotFlag <= 0 {
		return errors.New("headless runs need -frames or -autopilot to end")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h := &headlessHost{
		autopilot: tunnel.NewAutopilot(seed),
		limit:     *framesFlag,
		cancel:    cancel,
	}
	if *autopilotFlag > 0 {
		h.deadline = time.Now().Add(*autopilotFlag)
	}
	d := tunnel.NewDriver(r, h, cfg)

	start := time.Now()
	err := d.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	st := d.Stats()
	log.Printf("Headless run: %d frames, %d steps in %s (%s)", h.frames, st.Steps, time.Since(start).Round(time.Millisecond), r.CompositorName())

	if *snapshotFlag != "" {
		if serr := writeSnapshot(*snapshotFlag, r.Surface()); serr != nil {
			return errors.Join(err, serr)
		}
		log.Printf("Saved %s", *snapshotFlag)
	}
	return err
}
