package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

func sampleTrajectory() []dynamics.State {
	return []dynamics.State{
		{
			Att:  dynamics.Identity,
			Vel:  r3.Vec{Z: 100},
			Mass: 100,
		},
		{
			Time: 10,
			Pos:  r3.Vec{Z: 5000},
			Att:  dynamics.Identity,
			Mass: 80,
		},
		{
			Time: 20,
			Vel:  r3.Vec{Z: -50},
			Att:  dynamics.Identity,
			Mass: 80,
		},
	}
}

func TestSummaryComputesApogee(t *testing.T) {
	s := Summarize(sampleTrajectory())
	if math.Abs(s.ApogeeM-5000) > 0.1 {
		t.Errorf("apogee: got %g", s.ApogeeM)
	}
	if math.Abs(s.ApogeeTime-10) > 0.1 {
		t.Errorf("apogee time: got %g", s.ApogeeTime)
	}
	if math.Abs(s.MaxSpeed-100) > 1e-9 {
		t.Errorf("max speed: got %g", s.MaxSpeed)
	}
	if math.Abs(s.ImpactSpeed-50) > 1e-9 {
		t.Errorf("impact speed: got %g", s.ImpactSpeed)
	}
	if s.FlightTime != 20 {
		t.Errorf("flight time: got %g", s.FlightTime)
	}
	// 100 m/s shed over 10 s, then 50 m/s gained over 10 s.
	if math.Abs(s.MaxAccel-10) > 1e-9 {
		t.Errorf("max accel: got %g", s.MaxAccel)
	}
}

func TestTrajectoryCSVShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrajectory(&buf, sampleTrajectory()); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 { // header + 3 samples
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	if records[0][0] != "time" || len(records[0]) != len(TrajectoryHeader) {
		t.Errorf("bad header: %v", records[0])
	}
	if records[1][0] != "0.0000" {
		t.Errorf("first sample time: got %q", records[1][0])
	}
	// Identity attitude pointing up: pitch column reads 90 degrees.
	if records[1][16] != "90.00" {
		t.Errorf("pitch column: got %q", records[1][16])
	}
}

func TestSummaryJSONRoundTrip(t *testing.T) {
	mission := vehicle.NewMissionBuilder("Test").
		Stage(vehicle.NewStageBuilder("S1").Build()).
		Build()
	summary := Summarize(sampleTrajectory())

	var buf bytes.Buffer
	if err := WriteSummary(&buf, mission, summary); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\"mission\"") || !strings.Contains(out, "\"apogee_m\"") {
		t.Errorf("summary JSON missing keys: %s", out)
	}

	var back Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("summary should parse back: %v", err)
	}
	if back.Mission.Name != "Test" || back.Mission.Stages != 1 {
		t.Errorf("mission info: %+v", back.Mission)
	}
	if back.Performance.ApogeeM != summary.ApogeeM {
		t.Errorf("apogee did not round-trip: %g", back.Performance.ApogeeM)
	}
}

func TestWriteFilesToTempDir(t *testing.T) {
	dir := t.TempDir()
	traj := sampleTrajectory()
	if err := WriteTrajectoryFile(dir+"/traj.csv", traj); err != nil {
		t.Fatal(err)
	}
	mission := vehicle.NewMissionBuilder("T").Stage(vehicle.NewStageBuilder("s").Build()).Build()
	if err := WriteSummaryFile(dir+"/summary.json", mission, Summarize(traj)); err != nil {
		t.Fatal(err)
	}
}

func TestFlightProfileSVG(t *testing.T) {
	svg := FlightProfileSVG(sampleTrajectory(), 400, 200)
	if !strings.HasPrefix(svg, "<?xml") {
		t.Errorf("expected SVG document, got %.40q", svg)
	}
	if !strings.Contains(svg, "<path") {
		t.Error("expected a path element")
	}

	if got := FlightProfileSVG(sampleTrajectory()[:1], 400, 200); got != "" {
		t.Errorf("single point should produce no document, got %.40q", got)
	}
}
