// Package render turns a simulation state into pictures: a sampled density
// field shown as terminal digits or a grayscale PNG, and a braille particle
// canvas. Renderers only read the state and must be called between steps.
package render

import (
	"github.com/san-kum/sphsim/internal/dynamo"
	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/sph"
)

// Field is a density field sampled on a Cols x Rows raster. Row 0 is the top
// of the domain (MaxY).
type Field struct {
	Cols, Rows int
	Values     []float64
	Max        float64
}

func (f *Field) At(col, row int) float64 { return f.Values[row*f.Cols+col] }

// SampleField evaluates the density at the top-left corner of every raster
// cell using the grid returned by the step that produced st. A non-positive
// size yields an empty field.
func SampleField(st *sph.State, g *grid.Grid, cols, rows int) *Field {
	if cols <= 0 || rows <= 0 {
		return &Field{}
	}
	f := &Field{Cols: cols, Rows: rows, Values: make([]float64, cols*rows)}

	b := st.Params.Bounds
	dx := b.Width() / float64(cols)
	dy := b.Height() / float64(rows)

	dynamo.ParallelFor(rows, 4, st.Params.Workers, func(start, end int) {
		for r := start; r < end; r++ {
			y := b.MaxY - float64(r)*dy
			for c := 0; c < cols; c++ {
				x := b.MinX + float64(c)*dx
				f.Values[r*cols+c] = sph.DensityAt(st.Particles, g, st.Params, x, y)
			}
		}
	})

	for _, v := range f.Values {
		f.Max = max(f.Max, v)
	}
	return f
}

// level maps v onto [0, steps] relative to scale, rounding to nearest.
func level(v, scale float64, steps int) int {
	if scale <= 0 || !(v > 0) {
		return 0
	}
	l := int(float64(steps)*v/scale + 0.5)
	return min(max(l, 0), steps)
}
