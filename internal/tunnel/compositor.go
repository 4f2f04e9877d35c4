package tunnel

// Compositor paints a surface from the texture, the tables and a view.
type Compositor interface {
	Composite(dst *Surface, tex *Texture, tables *Tables, view View) error
	Name() string
}

// CPUCompositor is the reference compositor. It allocates nothing and its
// output depends only on its arguments.
type CPUCompositor struct{}

func (CPUCompositor) Name() string { return "cpu" }

// Composite dispatches on the view mode.
func (CPUCompositor) Composite(dst *Surface, tex *Texture, tables *Tables, view View) error {
	if view.Mode == ModeFlat {
		RenderFlat(dst, tex, view)
		return nil
	}
	RenderTunnel(dst, tex, tables, view)
	return nil
}

// RenderTunnel overwrites every pixel of dst with the texel found by
// looking up the pixel, offset by the view's look shift, in the tables and
// adding the rotation and translation offsets.
func RenderTunnel(dst *Surface, tex *Texture, tables *Tables, view View) {
	renderTunnelRows(dst, tex, tables, view, 0, dst.Height)
}

func renderTunnelRows(dst *Surface, tex *Texture, tables *Tables, view View, y0, y1 int) {
	mask := view.Color.Mask()
	size := tex.Size
	shiftX, shiftY := tables.ClampShift(int(view.LookShiftX), int(view.LookShiftY))
	rot := int(view.Rotation)
	trans := int(view.Translation)
	for y := y0; y < y1; y++ {
		tableRow := (y+shiftY)*tables.Width + shiftX
		dist := tables.Distance[tableRow : tableRow+dst.Width]
		angle := tables.Angle[tableRow : tableRow+dst.Width]
		out := dst.Pixels[y*dst.Width : (y+1)*dst.Width]
		for x := range out {
			texelY := Wrap(int(dist[x])+trans, size)
			texelX := Wrap(int(angle[x])+rot, size)
			v := uint32(tex.Texels[texelY*size+texelX])
			out[x] = (v<<16 | v<<8 | v) & mask
		}
	}
}

// RenderFlat tiles the texture over dst, scrolled horizontally by the
// rotation offset and vertically by the translation offset.
func RenderFlat(dst *Surface, tex *Texture, view View) {
	renderFlatRows(dst, tex, view, 0, dst.Height)
}

func renderFlatRows(dst *Surface, tex *Texture, view View, y0, y1 int) {
	mask := view.Color.Mask()
	size := tex.Size
	for y := y0; y < y1; y++ {
		texRow := tex.Texels[Wrap(y+int(view.Translation), size)*size:]
		out := dst.Pixels[y*dst.Width : (y+1)*dst.Width]
		for x := range out {
			v := uint32(texRow[Wrap(x+int(view.Rotation), size)])
			out[x] = (v<<16 | v<<8 | v) & mask
		}
	}
}

// Wrap returns v modulo n in [0, n) for any sign of v.
func Wrap(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}
