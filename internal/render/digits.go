package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/sphsim/internal/sph"
)

// Digits renders f as rows of characters '1'..'9', density scaled against
// scale. Cells that round to zero are blank.
func Digits(f *Field, scale float64) string {
	var b strings.Builder
	b.Grow((f.Cols + 1) * f.Rows)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if l := level(f.At(c, r), scale, 9); l > 0 {
				b.WriteByte(byte('0' + l))
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Stats is the plain-text diagnostics footer printed under a frame.
func Stats(d sph.Diagnostics) string {
	return fmt.Sprintf("Max density: %g\nMax neighbours: %d\nFrame time: %s\nH: %g\n",
		d.MaxDensity, d.MaxNeighbours, d.FrameTime, d.H)
}
