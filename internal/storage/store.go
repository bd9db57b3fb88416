package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/sphsim/internal/config"
	"github.com/san-kum/sphsim/internal/sim"
	"github.com/san-kum/sphsim/internal/snapshot"
	"github.com/san-kum/sphsim/internal/sph"
)

const (
	metadataFile    = "metadata.json"
	configFile      = "config.yaml"
	diagnosticsFile = "diagnostics.csv"
	snapshotFile    = "final.snap"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Particles  int                `json:"particles"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	StepsTaken int                `json:"steps_taken"`
	SimTime    float64            `json:"sim_time"`
	Elapsed    time.Duration      `json:"elapsed"`
	Duck       bool               `json:"duck"`
	Metrics    map[string]float64 `json:"metrics"`
}

// DiagnosticsRecord is one row of diagnostics.csv.
type DiagnosticsRecord struct {
	Step          int     `csv:"step"`
	Time          float64 `csv:"time"`
	MaxDensity    float64 `csv:"max_density"`
	MaxNeighbours int     `csv:"max_neighbours"`
	FrameMicros   int64   `csv:"frame_us"`
	H             float64 `csv:"h"`
	GridWidth     int     `csv:"grid_width"`
	GridHeight    int     `csv:"grid_height"`
}

func NewDiagnosticsRecord(d sph.Diagnostics) DiagnosticsRecord {
	return DiagnosticsRecord{
		Step:          d.Step,
		Time:          d.Time,
		MaxDensity:    d.MaxDensity,
		MaxNeighbours: d.MaxNeighbours,
		FrameMicros:   d.FrameTime.Microseconds(),
		H:             d.H,
		GridWidth:     d.GridWidth,
		GridHeight:    d.GridHeight,
	}
}

// Save writes a run directory holding metadata, the configuration, the
// per-step diagnostics and the final particle snapshot.
func (s *Store) Save(cfg *config.Config, st *sph.State, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     cfg.Name,
		Timestamp:  now,
		Particles:  len(st.Particles),
		Dt:         cfg.Run.Dt,
		Steps:      cfg.Run.Steps,
		StepsTaken: result.StepsTaken,
		SimTime:    st.Time,
		Elapsed:    result.Elapsed,
		Duck:       st.Duck.Enabled(),
		Metrics:    result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", fmt.Errorf("writing %s: %w", configFile, err)
	}

	records := make([]DiagnosticsRecord, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		records[i] = NewDiagnosticsRecord(d)
	}
	csvFile, err := os.Create(filepath.Join(runDir, diagnosticsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", fmt.Errorf("writing %s: %w", diagnosticsFile, err)
	}

	if err := os.WriteFile(filepath.Join(runDir, snapshotFile), snapshot.Marshal(st.Particles), 0644); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadDiagnostics(runID string) ([]DiagnosticsRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, diagnosticsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []DiagnosticsRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading %s: %w", diagnosticsFile, err)
	}
	return records, nil
}

func (s *Store) LoadSnapshot(runID string) ([]sph.Particle, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, snapshotFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return snapshot.Decode(f)
}
