package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/export"
	"github.com/san-kum/rocketsim/internal/sim"
)

// Store archives flight runs on disk, one directory per run with a
// metadata.json and the full trajectory as CSV.
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
	ID         string               `json:"id"`
	Mission    string               `json:"mission"`
	Timestamp  time.Time            `json:"timestamp"`
	Dt         float64              `json:"dt"`
	MaxTime    float64              `json:"max_time"`
	Controller string               `json:"controller"`
	Stages     int                  `json:"stages"`
	Samples    int                  `json:"samples"`
	Events     []string             `json:"events"`
	Summary    export.FlightSummary `json:"summary"`
	Metrics    map[string]float64   `json:"metrics"`
}

func (s *Store) Save(mission string, stages int, cfg sim.Config, controller string, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", mission, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	events := make([]string, 0, len(result.Events))
	for _, ev := range result.Events {
		events = append(events, ev.String())
	}

	meta := RunMetadata{
		ID:         runID,
		Mission:    mission,
		Timestamp:  time.Now(),
		Dt:         cfg.Dt,
		MaxTime:    cfg.MaxTime,
		Controller: controller,
		Stages:     stages,
		Samples:    len(result.Trajectory),
		Events:     events,
		Summary:    export.Summarize(result.Trajectory),
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := export.WriteTrajectoryFile(filepath.Join(runDir, "trajectory.csv"), result.Trajectory); err != nil {
		return "", err
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads a run's trajectory CSV back into states. Only the
// physical columns are parsed; the derived pitch and alpha columns at the
// end of each row are recomputed on demand by State itself.
func (s *Store) LoadTrajectory(runID string) ([]dynamics.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []dynamics.State{}, nil
	}

	trajectory := make([]dynamics.State, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 16 {
			return nil, fmt.Errorf("storage: short trajectory row: %d fields", len(record))
		}

		vals := make([]float64, 15)
		for i := range vals {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: parse trajectory: %w", err)
			}
			vals[i] = v
		}

		stage, err := strconv.Atoi(record[15])
		if err != nil {
			return nil, fmt.Errorf("storage: parse stage index: %w", err)
		}

		trajectory = append(trajectory, dynamics.State{
			Time:     vals[0],
			Pos:      r3.Vec{X: vals[1], Y: vals[2], Z: vals[3]},
			Vel:      r3.Vec{X: vals[4], Y: vals[5], Z: vals[6]},
			Att:      quat.Number{Real: vals[7], Imag: vals[8], Jmag: vals[9], Kmag: vals[10]},
			Omega:    r3.Vec{X: vals[11], Y: vals[12], Z: vals[13]},
			Mass:     vals[14],
			StageIdx: stage,
		})
	}

	return trajectory, nil
}
