package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/grid"
	"github.com/san-kum/sphsim/internal/kernel"
	"github.com/san-kum/sphsim/internal/sph"
)

func testState(t *testing.T, pts ...r2.Vec) (*sph.State, *grid.Grid) {
	t.Helper()
	p := sph.Params{
		H: 16, Mass: 65, GasConstant: 2000, RestDensity: 1, Viscosity: 250,
		Gravity: -980, Damping: 0.5, MinDensity: 1e-6,
		Bounds: grid.Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 30},
	}
	particles := make([]sph.Particle, len(pts))
	for i, pos := range pts {
		particles[i] = sph.Particle{Pos: pos}
	}
	st, err := sph.NewState(p, particles, sph.RigidBody{})
	if err != nil {
		t.Fatal(err)
	}
	g := grid.New(p.H, p.Bounds)
	for i, pt := range st.Particles {
		g.Insert(i, pt.Pos.X, pt.Pos.Y)
	}
	return st, g
}

func TestSampleField(t *testing.T) {
	st, g := testState(t, r2.Vec{X: 0, Y: 30})
	f := SampleField(st, g, 10, 3)

	if len(f.Values) != 30 {
		t.Fatalf("len = %d", len(f.Values))
	}
	// (0, MaxY) is the top-left sample and sits on the particle
	want := st.Params.Mass * kernel.Weight(0, st.Params.H)
	if f.At(0, 0) != want || f.Max != want {
		t.Errorf("top-left = %v max = %v, want %v", f.At(0, 0), f.Max, want)
	}
	if f.At(9, 2) != 0 {
		t.Errorf("far corner = %v, want 0", f.At(9, 2))
	}
}

func TestSampleField_EmptySize(t *testing.T) {
	st, g := testState(t, r2.Vec{X: 50, Y: 15})
	for _, size := range [][2]int{{-1, 2}, {3, 0}, {0, 0}} {
		f := SampleField(st, g, size[0], size[1])
		if f.Cols != 0 || f.Rows != 0 || len(f.Values) != 0 {
			t.Errorf("size %v: got %dx%d with %d values", size, f.Cols, f.Rows, len(f.Values))
		}
		if b := Image(f, 1).Bounds(); !b.Empty() {
			t.Errorf("size %v: image bounds %v, want empty", size, b)
		}
	}
}

func TestDigits(t *testing.T) {
	f := &Field{Cols: 4, Rows: 2, Values: []float64{0, 1, 0.5, 10, 0.04, 0, 0.2, -1}}
	got := Digits(f, 1)
	want := " 959\n  2 \n"
	if got != want {
		t.Errorf("Digits = %q, want %q", got, want)
	}

	if blank := Digits(f, 0); strings.TrimSpace(blank) != "" {
		t.Errorf("zero scale should render blank, got %q", blank)
	}
}

func TestStats(t *testing.T) {
	s := Stats(sph.Diagnostics{MaxDensity: 1.5, MaxNeighbours: 12, H: 16})
	for _, want := range []string{"Max density: 1.5", "Max neighbours: 12", "H: 16"} {
		if !strings.Contains(s, want) {
			t.Errorf("Stats missing %q:\n%s", want, s)
		}
	}
}

func TestWritePNG(t *testing.T) {
	f := &Field{Cols: 3, Rows: 2, Values: []float64{0, 0.5, 1, 2, 0.25, 0}}
	var buf bytes.Buffer
	if err := WritePNG(&buf, f, 1); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("size = %v", b)
	}

	tests := []struct {
		x, y int
		want uint32
	}{
		{0, 0, 0},
		{1, 0, 128},
		{2, 0, 255},
		{0, 1, 255},
		{1, 1, 64},
	}
	for _, tt := range tests {
		r, _, _, _ := img.At(tt.x, tt.y).RGBA()
		if r>>8 != tt.want {
			t.Errorf("pixel (%d,%d) = %d, want %d", tt.x, tt.y, r>>8, tt.want)
		}
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(100, 0)
	if got := c.String(); got != string([]rune{0x2801, 0x2880})+"\n" {
		t.Errorf("canvas = %q", got)
	}
	c.Clear()
	if c.Grid[0][0] != blank {
		t.Error("clear did not reset")
	}
}

func TestCanvasPlot(t *testing.T) {
	st, _ := testState(t, r2.Vec{X: 0, Y: 30}, r2.Vec{X: 100, Y: 0})
	c := NewCanvas(10, 3)
	c.Plot(st)
	if c.Grid[0][0] == blank {
		t.Error("top-left particle not drawn")
	}
	if c.Grid[2][9] == blank {
		t.Error("bottom-right particle not drawn")
	}

	st.Duck = sph.RigidBody{Pos: r2.Vec{X: 50, Y: 15}, Radius: 10, Mass: 1}
	c.Plot(st)
	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				lit++
			}
		}
	}
	if lit < 4 {
		t.Errorf("duck outline not drawn, %d cells lit", lit)
	}
}

func TestSVG(t *testing.T) {
	st, _ := testState(t, r2.Vec{X: 0, Y: 30}, r2.Vec{X: 100, Y: 0})
	st.Particles[1].Density = 2

	got := SVG(st, 2, 2)
	for _, want := range []string{
		`width="200" height="60"`,
		`<circle cx="0.0" cy="0.0" r="8.0" fill="rgb(0,32,64)"/>`,
		`<circle cx="200.0" cy="60.0" r="8.0" fill="rgb(0,127,255)"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(got, "stroke") {
		t.Error("disabled body drawn")
	}

	st.Duck = sph.RigidBody{Pos: r2.Vec{X: 50, Y: 15}, Radius: 10, Mass: 1}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, st, 2, 1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<circle cx="50.0" cy="15.0" r="10.0" fill="none"`) {
		t.Error("body outline missing")
	}
}
