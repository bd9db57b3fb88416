package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/sphsim/internal/sph"
)

// SVG draws every particle of st as a dot shaded by its density against
// scale, plus the rigid body outline when it is enabled. One domain unit maps
// to zoom pixels and y points up.
func SVG(st *sph.State, scale, zoom float64) string {
	b := st.Params.Bounds
	width := b.Width() * zoom
	height := b.Height() * zoom

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g>
`, width, height, width, height)

	dotRadius := st.Params.H * 0.25 * zoom
	for _, p := range st.Particles {
		cx := (p.Pos.X - b.MinX) * zoom
		cy := height - (p.Pos.Y-b.MinY)*zoom
		l := max(level(p.Density, scale, 255), 64)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="rgb(0,%d,%d)"/>
`, cx, cy, dotRadius, l/2, l)
	}

	if st.Duck.Enabled() {
		cx := (st.Duck.Pos.X - b.MinX) * zoom
		cy := height - (st.Duck.Pos.Y-b.MinY)*zoom
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#ffd700" stroke-width="2"/>
`, cx, cy, st.Duck.Radius*zoom)
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG writes the SVG rendering of st to w.
func WriteSVG(w io.Writer, st *sph.State, scale, zoom float64) error {
	_, err := io.WriteString(w, SVG(st, scale, zoom))
	return err
}
