package render

import (
	"math"
	"strings"

	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/sph"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille raster of Width x Height characters, i.e.
// (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights dot (x, y); dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// dot maps a world position onto canvas dot coordinates with MaxY at the top.
func (c *Canvas) dot(b grid.Bounds, x, y float64) (int, int) {
	w, h := float64(c.Width*2), float64(c.Height*4)
	px := (x - b.MinX) / b.Width() * (w - 1)
	py := (b.MaxY - y) / b.Height() * (h - 1)
	return int(math.Round(px)), int(math.Round(py))
}

// Plot clears the canvas and draws every particle plus the rigid body outline.
func (c *Canvas) Plot(st *sph.State) {
	c.Clear()
	b := st.Params.Bounds
	for i := range st.Particles {
		c.Set(c.dot(b, st.Particles[i].Pos.X, st.Particles[i].Pos.Y))
	}
	if st.Duck.Enabled() {
		cx, cy := c.dot(b, st.Duck.Pos.X, st.Duck.Pos.Y)
		r := st.Duck.Radius / b.Width() * float64(c.Width*2-1)
		c.DrawCircle(cx, cy, int(math.Round(r)))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
