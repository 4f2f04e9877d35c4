package tunnel

import (
	"errors"
	"testing"
)

func TestRendererResizeKeepsBuffersPaired(t *testing.T) {
	r := mustRenderer(t, 40, 30, mustTexture(t, 32, XORPattern))
	s0, t0 := r.Surface(), r.Tables()

	if err := r.Resize(40, 30); err != nil {
		t.Fatal(err)
	}
	if r.Surface() != s0 || r.Tables() != t0 {
		t.Error("same-size resize reallocated buffers")
	}

	if err := r.Resize(20, 10); err != nil {
		t.Fatal(err)
	}
	s, tb := r.Surface(), r.Tables()
	if s == s0 || tb == t0 {
		t.Fatal("resize reused old buffers")
	}
	if s.Pitch != 20*BytesPerPixel || len(s.Pixels)*BytesPerPixel != s.Pitch*s.Height {
		t.Errorf("surface pitch %d / %d pixels inconsistent", s.Pitch, len(s.Pixels))
	}
	if tb.Width != 2*s.Width || tb.Height != 2*s.Height {
		t.Errorf("tables %dx%d not double surface %dx%d", tb.Width, tb.Height, s.Width, s.Height)
	}
}

func TestRendererResizeFailureKeepsState(t *testing.T) {
	r := mustRenderer(t, 8, 8, mustTexture(t, 16, XORPattern))
	s0 := r.Surface()
	if err := r.Resize(-1, 8); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Resize(-1,8) err = %v", err)
	}
	if r.Surface() != s0 {
		t.Error("failed resize replaced the surface")
	}
}

func TestNewRendererRequiresTexture(t *testing.T) {
	if _, err := NewRenderer(8, 8, nil, RendererOptions{}); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("NewRenderer(nil texture) err = %v", err)
	}
}

type failingCompositor struct {
	calls int
}

func (f *failingCompositor) Name() string { return "broken" }

func (f *failingCompositor) Composite(*Surface, *Texture, *Tables, View) error {
	f.calls++
	return errors.New("device lost")
}

func TestRendererFallsBackToCPU(t *testing.T) {
	tex := mustTexture(t, 16, XORPattern)
	broken := &failingCompositor{}
	r, err := NewRenderer(8, 8, tex, RendererOptions{Compositor: broken})
	if err != nil {
		t.Fatal(err)
	}
	v := View{LookShiftX: 4, LookShiftY: 4, Color: ColorWhite}
	for i := 0; i < maxAccelFailures; i++ {
		if err := r.Render(v); err == nil {
			t.Fatalf("render %d: expected error from broken compositor", i)
		}
		// A frame is still produced.
		if got, want := r.Surface().At(0, 0), referenceTunnel(r.Tables(), tex, v, 0, 0); got != want {
			t.Fatalf("render %d: pixel = %#06x, want %#06x", i, got, want)
		}
	}
	if name := r.CompositorName(); name != "cpu" {
		t.Fatalf("compositor = %q after %d failures, want cpu", name, maxAccelFailures)
	}
	if err := r.Render(v); err != nil {
		t.Fatalf("render after fallback: %v", err)
	}
	if broken.calls != maxAccelFailures {
		t.Errorf("broken compositor called %d times, want %d", broken.calls, maxAccelFailures)
	}
}
