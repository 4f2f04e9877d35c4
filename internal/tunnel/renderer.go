package tunnel

import "fmt"

// maxAccelFailures is how many consecutive failed frames an alternate
// compositor is allowed before the renderer falls back to the CPU.
const maxAccelFailures = 3

// RendererOptions configures a Renderer. Zero values select defaults.
type RendererOptions struct {
	Ratio      float64
	Compositor Compositor
}

// Renderer owns the surface and the tables for one output and keeps them
// the same size. It is not safe for concurrent use; a resize always
// completes before the next Render reads either buffer.
type Renderer struct {
	texture *Texture
	surface *Surface
	tables  *Tables
	ratio   float64

	comp     Compositor
	failures int
}

// NewRenderer allocates a width×height surface and its tables.
func NewRenderer(width, height int, tex *Texture, opts RendererOptions) (*Renderer, error) {
	if tex == nil || tex.Size <= 0 {
		return nil, fmt.Errorf("renderer texture: %w", ErrInvalidSize)
	}
	r := &Renderer{
		texture: tex,
		ratio:   opts.Ratio,
		comp:    opts.Compositor,
	}
	if r.ratio <= 0 {
		r.ratio = DefaultRatio
	}
	if r.comp == nil {
		r.comp = CPUCompositor{}
	}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize rebuilds the surface and tables for a new size. It does nothing
// when the size is unchanged. On error the previous buffers stay in place.
func (r *Renderer) Resize(width, height int) error {
	if r.surface != nil && r.surface.Width == width && r.surface.Height == height {
		return nil
	}
	surface, err := NewSurface(width, height)
	if err != nil {
		return err
	}
	tables, err := NewTables(width, height, r.texture.Size, r.ratio)
	if err != nil {
		return err
	}
	r.surface = surface
	r.tables = tables
	return nil
}

// Render paints the surface for v.
func (r *Renderer) Render(v View) error {
	if _, ok := r.comp.(CPUCompositor); ok {
		return r.comp.Composite(r.surface, r.texture, r.tables, v)
	}
	if err := r.comp.Composite(r.surface, r.texture, r.tables, v); err != nil {
		name := r.comp.Name()
		r.failures++
		if r.failures >= maxAccelFailures {
			r.comp = CPUCompositor{}
		}
		// Still deliver a frame for this step.
		_ = CPUCompositor{}.Composite(r.surface, r.texture, r.tables, v)
		return fmt.Errorf("%s compositor: %w", name, err)
	}
	r.failures = 0
	return nil
}

// Surface returns the current output surface. The pointer changes on resize.
func (r *Renderer) Surface() *Surface { return r.surface }

// Tables returns the current lookup tables. The pointer changes on resize.
func (r *Renderer) Tables() *Tables { return r.tables }

// Texture returns the source texture.
func (r *Renderer) Texture() *Texture { return r.texture }

// CompositorName reports which compositor is active.
func (r *Renderer) CompositorName() string { return r.comp.Name() }
