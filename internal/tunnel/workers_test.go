package tunnel

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParallelCompositorMatchesCPU(t *testing.T) {
	tex := mustTexture(t, 64, XORPattern)
	for _, workers := range []int{1, 3, 8, 50} {
		for _, mode := range []Mode{ModeTunnel, ModeFlat} {
			want := mustRenderer(t, 37, 23, tex)
			got := mustRenderer(t, 37, 23, tex)
			v := NewView(37, 23, ColorMagenta)
			v.Rotation, v.Translation, v.Mode = -17, 301, mode
			v.LookShiftX, v.LookShiftY = 5, 30

			c := NewParallelCompositor(workers)
			if err := want.Render(v); err != nil {
				t.Fatal(err)
			}
			if err := c.Composite(got.Surface(), tex, got.Tables(), v); err != nil {
				t.Fatal(err)
			}
			// Run a second frame through the same workers.
			v.Rotation++
			if err := want.Render(v); err != nil {
				t.Fatal(err)
			}
			if err := c.Composite(got.Surface(), tex, got.Tables(), v); err != nil {
				t.Fatal(err)
			}
			c.Close()
			if diff := cmp.Diff(want.Surface().Pixels, got.Surface().Pixels); diff != "" {
				t.Errorf("workers=%d mode=%s: pixels differ (-cpu +parallel):\n%s", workers, mode, diff)
			}
		}
	}
}

func TestParallelCompositorClosed(t *testing.T) {
	tex := mustTexture(t, 16, XORPattern)
	r := mustRenderer(t, 8, 8, tex)
	c := NewParallelCompositor(2)
	c.Close()
	err := c.Composite(r.Surface(), tex, r.Tables(), NewView(8, 8, ColorWhite))
	if !errors.Is(err, errCompositorClosed) {
		t.Errorf("Composite after Close = %v", err)
	}
}

func TestParallelCompositorDefaultsWorkers(t *testing.T) {
	c := NewParallelCompositor(0)
	defer c.Close()
	if c.Workers() < 1 {
		t.Errorf("Workers() = %d", c.Workers())
	}
}

func TestBandsCoverEveryRowOnce(t *testing.T) {
	for _, tc := range []struct{ count, height int }{{1, 10}, {3, 10}, {4, 480}, {7, 3}} {
		seen := make([]int, tc.height)
		for i := 0; i < tc.count; i++ {
			y0, y1 := band(i, tc.count, tc.height)
			for y := y0; y < y1; y++ {
				seen[y]++
			}
		}
		for y, n := range seen {
			if n != 1 {
				t.Errorf("count=%d height=%d: row %d painted %d times", tc.count, tc.height, y, n)
			}
		}
	}
}

func TestRendererWithParallelCompositor(t *testing.T) {
	tex := mustTexture(t, 32, MosaicPattern)
	c := NewParallelCompositor(4)
	defer c.Close()
	r, err := NewRenderer(20, 12, tex, RendererOptions{Compositor: c})
	if err != nil {
		t.Fatal(err)
	}
	ref := mustRenderer(t, 20, 12, tex)
	v := NewView(20, 12, ColorGreen)
	if err := r.Render(v); err != nil {
		t.Fatal(err)
	}
	if err := ref.Render(v); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ref.Surface().Pixels, r.Surface().Pixels); diff != "" {
		t.Errorf("pixels differ:\n%s", diff)
	}
	if r.CompositorName() != "cpu-parallel" {
		t.Errorf("CompositorName() = %q", r.CompositorName())
	}
}
