package tunnel

import (
	"errors"
	"runtime"
	"sync"
)

var errCompositorClosed = errors.New("compositor closed")

// compositeJob is the frame the workers are currently painting.
type compositeJob struct {
	dst    *Surface
	tex    *Texture
	tables *Tables
	view   View
}

// ParallelCompositor splits each frame into horizontal bands painted by a
// fixed set of worker goroutines. Its output is identical to CPUCompositor.
type ParallelCompositor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	workers int
	step    int
	pending int
	job     compositeJob
	closed  bool
}

// NewParallelCompositor starts workers goroutines; zero or less uses one per
// CPU. Close stops them.
func NewParallelCompositor(workers int) *ParallelCompositor {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	c := &ParallelCompositor{workers: workers}
	c.cond = sync.NewCond(&c.mu)
	for i := 0; i < workers; i++ {
		go c.workerLoop(i)
	}
	return c
}

func (c *ParallelCompositor) Name() string { return "cpu-parallel" }

// Workers reports the number of worker goroutines.
func (c *ParallelCompositor) Workers() int { return c.workers }

// Composite paints dst and returns once every band is done.
func (c *ParallelCompositor) Composite(dst *Surface, tex *Texture, tables *Tables, view View) error {
	// Fail before any worker could touch an invalid color.
	_ = view.Color.Mask()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errCompositorClosed
	}
	c.job = compositeJob{dst: dst, tex: tex, tables: tables, view: view}
	c.pending = c.workers
	c.step++
	c.cond.Broadcast()
	for c.pending > 0 {
		c.cond.Wait()
	}
	c.job = compositeJob{}
	return nil
}

func (c *ParallelCompositor) workerLoop(index int) {
	lastStep := 0
	c.mu.Lock()
	for {
		for c.step == lastStep && !c.closed {
			c.cond.Wait()
		}
		if c.closed {
			c.mu.Unlock()
			return
		}
		lastStep = c.step
		job := c.job
		c.mu.Unlock()

		y0, y1 := band(index, c.workers, job.dst.Height)
		if y0 < y1 {
			if job.view.Mode == ModeFlat {
				renderFlatRows(job.dst, job.tex, job.view, y0, y1)
			} else {
				renderTunnelRows(job.dst, job.tex, job.tables, job.view, y0, y1)
			}
		}

		c.mu.Lock()
		c.pending--
		if c.pending == 0 {
			c.cond.Broadcast()
		}
	}
}

// band returns the half-open row range painted by worker index of count.
func band(index, count, height int) (int, int) {
	return index * height / count, (index + 1) * height / count
}

// Close stops the workers. Later Composite calls fail.
func (c *ParallelCompositor) Close() {
	c.mu.Lock()
	c.closed = true
	c.cond.Broadcast()
	c.mu.Unlock()
}
