// Package grid provides the uniform bucket grid used for SPH neighbour search.
//
// The cell size is fixed at 2h, the full kernel support diameter, so the 3x3
// block of cells around a point always contains every particle within kernel
// range of that point. Cells store particle indices, never copies.
//
// A Grid is disposable: the solver builds a fresh one every step instead of
// updating it incrementally.
package grid

import "math"

// Bounds is an axis-aligned rectangle [MinX,MaxX]x[MinY,MaxY].
type Bounds struct {
	MinX float64 `yaml:"min_x" json:"min_x"`
	MaxX float64 `yaml:"max_x" json:"max_x"`
	MinY float64 `yaml:"min_y" json:"min_y"`
	MaxY float64 `yaml:"max_y" json:"max_y"`
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether (x, y) lies inside the closed rectangle.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Clamp returns (x, y) moved onto the nearest point of the rectangle.
func (b Bounds) Clamp(x, y float64) (float64, float64) {
	return math.Min(math.Max(x, b.MinX), b.MaxX), math.Min(math.Max(y, b.MinY), b.MaxY)
}

// Grid buckets particle indices by position.
type Grid struct {
	bounds   Bounds
	h        float64
	cellSize float64
	width    int
	height   int
	cells    [][]int
	count    int
}

// New allocates a grid covering bounds with cell size 2h.
func New(h float64, bounds Bounds) *Grid {
	cellSize := 2.0 * h
	width := int(math.Floor(bounds.Width()/cellSize)) + 1
	height := int(math.Floor(bounds.Height()/cellSize)) + 1
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	return &Grid{
		bounds:   bounds,
		h:        h,
		cellSize: cellSize,
		width:    width,
		height:   height,
		cells:    make([][]int, width*height),
	}
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) H() float64        { return g.h }
func (g *Grid) CellSize() float64 { return g.cellSize }
func (g *Grid) Bounds() Bounds    { return g.bounds }
func (g *Grid) Len() int          { return g.count }

func (g *Grid) index(gx, gy int) int { return gy*g.width + gx }

// Cell maps a world position to its cell coordinates. Positions outside the
// bounds are clamped onto the edge cells; the integrator clamps particles
// before insertion, so this only guards against logic faults.
func (g *Grid) Cell(x, y float64) (int, int) {
	gx := clampCell(math.Floor((x-g.bounds.MinX)/g.cellSize), g.width)
	gy := clampCell(math.Floor((y-g.bounds.MinY)/g.cellSize), g.height)
	return gx, gy
}

// Insert appends index to the cell owning (x, y).
func (g *Grid) Insert(index int, x, y float64) {
	gx, gy := g.Cell(x, y)
	i := g.index(gx, gy)
	g.cells[i] = append(g.cells[i], index)
	g.count++
}

// CellParticles returns the indices stored in cell (gx, gy). The slice is
// owned by the grid and must not be modified.
func (g *Grid) CellParticles(gx, gy int) []int {
	if gx < 0 || gy < 0 || gx >= g.width || gy >= g.height {
		return nil
	}
	return g.cells[g.index(gx, gy)]
}

// ForEachNeighbor calls fn once for every index stored in the 3x3 block of
// cells centred on the cell containing (x, y). Rows and columns beyond the
// domain edge are skipped; there is no wraparound.
func (g *Grid) ForEachNeighbor(x, y float64, fn func(j int)) {
	gx, gy := g.Cell(x, y)
	g.forEachInBlock(gx, gy, fn)
}

// Neighbors appends the indices of the 3x3 block around (x, y) to dst.
// Each cell is visited exactly once, so an index appears at most once.
func (g *Grid) Neighbors(x, y float64, dst []int) []int {
	gx, gy := g.Cell(x, y)
	return g.NeighborsOfCell(gx, gy, dst)
}

// NeighborsOfCell appends the indices of the 3x3 block around cell (gx, gy).
func (g *Grid) NeighborsOfCell(gx, gy int, dst []int) []int {
	for y := max(gy-1, 0); y <= min(gy+1, g.height-1); y++ {
		for x := max(gx-1, 0); x <= min(gx+1, g.width-1); x++ {
			dst = append(dst, g.cells[g.index(x, y)]...)
		}
	}
	return dst
}

func (g *Grid) forEachInBlock(gx, gy int, fn func(j int)) {
	for y := max(gy-1, 0); y <= min(gy+1, g.height-1); y++ {
		for x := max(gx-1, 0); x <= min(gx+1, g.width-1); x++ {
			for _, j := range g.cells[g.index(x, y)] {
				fn(j)
			}
		}
	}
}

// Cells calls fn for every non-empty cell with the cell's own particles and
// the particles of its 3x3 neighbourhood. Returning false stops iteration.
func (g *Grid) Cells(fn func(particles, neighbours []int) bool) {
	var scratch []int
	for gy := 0; gy < g.height; gy++ {
		for gx := 0; gx < g.width; gx++ {
			own := g.cells[g.index(gx, gy)]
			if len(own) == 0 {
				continue
			}
			scratch = g.NeighborsOfCell(gx, gy, scratch[:0])
			if !fn(own, scratch) {
				return
			}
		}
	}
}

// Occupancy returns the largest number of particles held by a single cell.
func (g *Grid) Occupancy() int {
	best := 0
	for _, c := range g.cells {
		if len(c) > best {
			best = len(c)
		}
	}
	return best
}

// clampCell converts a floored cell coordinate to an index in [0, n).
// NaN maps to 0.
func clampCell(f float64, n int) int {
	if !(f >= 0) {
		return 0
	}
	if f > float64(n-1) {
		return n - 1
	}
	return int(f)
}
