package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/sphsim/internal/sph"
)

type ExportData struct {
	Run         RunMetadata         `json:"run"`
	Diagnostics []DiagnosticsRecord `json:"diagnostics"`
}

// ExportJSON writes a run's metadata and diagnostics as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, diags []DiagnosticsRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Diagnostics: diags})
}

// ParticleRecord is one row of a particle CSV export.
type ParticleRecord struct {
	Index    int     `csv:"index"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VX       float64 `csv:"vx"`
	VY       float64 `csv:"vy"`
	Density  float64 `csv:"density"`
	Pressure float64 `csv:"pressure"`
}

// ExportParticlesCSV writes particles as CSV with a header row.
func ExportParticlesCSV(w io.Writer, particles []sph.Particle) error {
	records := make([]ParticleRecord, len(particles))
	for i, p := range particles {
		records[i] = ParticleRecord{
			Index:    i,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			VX:       p.Vel.X,
			VY:       p.Vel.Y,
			Density:  p.Density,
			Pressure: p.Pressure,
		}
	}
	return gocsv.Marshal(&records, w)
}
