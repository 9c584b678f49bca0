package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/rocketsim/internal/vehicle"
)

// Report is the structured flight report written as JSON.
type Report struct {
	Mission     MissionInfo   `json:"mission"`
	Performance FlightSummary `json:"performance"`
}

// MissionInfo identifies the flown mission.
type MissionInfo struct {
	Name   string `json:"name"`
	Stages int    `json:"stages"`
}

// WriteSummary writes the mission report as indented JSON.
func WriteSummary(w io.Writer, mission vehicle.Mission, summary FlightSummary) error {
	report := Report{
		Mission: MissionInfo{
			Name:   mission.Name,
			Stages: len(mission.Stages),
		},
		Performance: summary,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteSummaryFile writes the mission report JSON to path.
func WriteSummaryFile(path string, mission vehicle.Mission, summary FlightSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteSummary(f, mission, summary); err != nil {
		return err
	}
	return f.Close()
}
