package sim

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

func singleStage() vehicle.Mission {
	return vehicle.NewMissionBuilder("1-Stage").
		Stage(vehicle.NewStageBuilder("Main").
			DryMass(20).
			PropellantMass(10).
			Thrust(2000).
			Isp(220).
			Cd(0.3).
			Area(0.008).
			Inertia(r3.Vec{X: 5, Y: 5, Z: 0.5}).
			NozzleOffset(1).
			CPOffset(0.3).
			TVCMax(0.1).
			Build()).
		Build()
}

func twoStage() vehicle.Mission {
	return vehicle.NewMissionBuilder("2-Stage").
		Stage(vehicle.NewStageBuilder("Booster").
			DryMass(40).
			PropellantMass(25).
			Thrust(5000).
			Isp(220).
			Cd(0.35).
			Area(0.02).
			Inertia(r3.Vec{X: 20, Y: 20, Z: 2}).
			NozzleOffset(1.5).
			CPOffset(0.4).
			TVCMax(0.1).
			Build()).
		Stage(vehicle.NewStageBuilder("Sustainer").
			DryMass(8).
			PropellantMass(6).
			Thrust(1200).
			Isp(250).
			Cd(0.28).
			Area(0.008).
			Inertia(r3.Vec{X: 2, Y: 2, Z: 0.2}).
			NozzleOffset(0.6).
			CPOffset(0.25).
			TVCMax(0.08).
			Build()).
		Build()
}

func TestSingleStageFlight(t *testing.T) {
	res, err := New(singleStage(), nil).Run(Config{Dt: 0.005, MaxTime: 300})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	apogee := res.Apogee()
	if apogee <= 1000 || apogee >= 50000 {
		t.Errorf("apogee should land between 1 km and 50 km, got %.0f m", apogee)
	}
	if res.Final().Pos.Z > 0.01 {
		t.Errorf("flight should terminate on the ground, final altitude %g", res.Final().Pos.Z)
	}
}

func TestTwoStageBeatsSingleStage(t *testing.T) {
	cfg := Config{Dt: 0.005, MaxTime: 300}
	one, err := New(singleStage(), nil).Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	two, err := New(twoStage(), nil).Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if two.Apogee() <= one.Apogee() {
		t.Errorf("two stages (%.0f m) should out-fly one (%.0f m)", two.Apogee(), one.Apogee())
	}

	reached := 0
	for _, s := range two.Trajectory {
		if s.StageIdx > reached {
			reached = s.StageIdx
		}
	}
	if reached != 1 {
		t.Errorf("trajectory should record stage index 1, max was %d", reached)
	}
}

func TestQuaternionStaysUnit(t *testing.T) {
	res, err := New(singleStage(), nil).Run(Config{Dt: 0.005, MaxTime: 30})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range res.Trajectory {
		if dynamics.UnitError(s.Att) >= 1e-6 {
			t.Fatalf("attitude norm drifted by %g at t=%.2f", dynamics.UnitError(s.Att), s.Time)
		}
	}
}

func TestMassInvariants(t *testing.T) {
	res, err := New(twoStage(), nil).Run(Config{Dt: 0.005, MaxTime: 300})
	if err != nil {
		t.Fatal(err)
	}

	prev := res.Trajectory[0]
	for _, s := range res.Trajectory[1:] {
		if s.Mass < 0 {
			t.Fatalf("mass went negative at t=%.2f", s.Time)
		}
		if s.Mass > prev.Mass+1e-9 {
			t.Fatalf("mass increased from %g to %g at t=%.2f", prev.Mass, s.Mass, s.Time)
		}
		if s.StageIdx < prev.StageIdx {
			t.Fatalf("stage index decreased at t=%.2f", s.Time)
		}
		prev = s
	}

	// After all propellant is spent the mass is exactly constant and
	// sits at the sustainer dry mass plus at most the burn cutoff.
	last := res.Final()
	sustainerDry := 8.0
	if last.Mass < sustainerDry || last.Mass > sustainerDry+0.02 {
		t.Errorf("post-burnout mass should be ~sustainer dry mass, got %g", last.Mass)
	}
	n := len(res.Trajectory)
	for _, s := range res.Trajectory[n-100:] {
		if s.Mass != last.Mass {
			t.Fatalf("mass should be exactly constant after exhaustion, got %g vs %g", s.Mass, last.Mass)
		}
	}
}

func TestStageIndexBounded(t *testing.T) {
	m := twoStage()
	res, err := New(m, nil).Run(Config{Dt: 0.005, MaxTime: 300})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range res.Trajectory {
		if s.StageIdx > len(m.Stages)-1 {
			t.Fatalf("stage index %d exceeds N-1", s.StageIdx)
		}
	}
}

func TestRunSeedsIgnitionSample(t *testing.T) {
	res, err := New(singleStage(), nil).Run(Config{Dt: 0.005, MaxTime: 1})
	if err != nil {
		t.Fatal(err)
	}
	first := res.Trajectory[0]
	if first.Time != 0 || first.Pos != (r3.Vec{}) || first.Vel != (r3.Vec{}) {
		t.Errorf("first sample should be the ignition state: %+v", first)
	}
	if first.Mass != singleStage().TotalMass() {
		t.Errorf("ignition mass should be total wet mass, got %g", first.Mass)
	}
	if res.Commands[0] != (dynamics.Command{}) {
		t.Errorf("first command should be the zero command, got %+v", res.Commands[0])
	}
	if len(res.Commands) != len(res.Trajectory) {
		t.Errorf("command and trajectory sequences should be parallel: %d vs %d",
			len(res.Commands), len(res.Trajectory))
	}
}

func TestBangBangFlight(t *testing.T) {
	ctrl := &gncBangBang{}
	res, err := New(singleStage(), ctrl).Run(Config{Dt: 0.005, MaxTime: 300})
	if err != nil {
		t.Fatal(err)
	}
	if res.Apogee() <= 1000 {
		t.Errorf("bang-bang flight should still clear 1 km, got %.0f m", res.Apogee())
	}
}

func TestRunEvents(t *testing.T) {
	r := New(twoStage(), nil)
	r.AddDetector(ApogeeDetector{})
	r.AddDetector(&AltitudeDetector{Altitude: 1000, Ascending: true})
	res, err := r.Run(Config{Dt: 0.005, MaxTime: 300})
	if err != nil {
		t.Fatal(err)
	}

	kinds := map[EventKind]int{}
	for _, ev := range res.Events {
		kinds[ev.Kind]++
	}
	for _, want := range []EventKind{EventLaunch, EventStaging, EventApogee, EventLanding, EventCustom} {
		if kinds[want] == 0 {
			t.Errorf("missing %s event; got %v", want, res.Events)
		}
	}
	if kinds[EventStaging] != 1 {
		t.Errorf("exactly one staging event expected, got %d", kinds[EventStaging])
	}
	if kinds[EventCustom] != 1 {
		t.Errorf("altitude detector should fire once, got %d", kinds[EventCustom])
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, MaxTime: 10}},
		{"negative dt", Config{Dt: -0.01, MaxTime: 10}},
		{"zero max time", Config{Dt: 0.01, MaxTime: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(singleStage(), nil).Run(tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("want ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunRejectsDegenerateMission(t *testing.T) {
	bad := vehicle.NewMissionBuilder("bad").
		Stage(vehicle.NewStageBuilder("s").DryMass(0).Build()).
		Build()
	if _, err := New(bad, nil).Run(DefaultConfig()); !errors.Is(err, vehicle.ErrBadStage) {
		t.Errorf("degenerate mission should fail fast, got %v", err)
	}
}

// gncBangBang mirrors the example bang-bang law locally to keep the
// test free of controller-tuning coupling.
type gncBangBang struct{}

func (g *gncBangBang) Control(state dynamics.State, _ vehicle.Mission, _ float64) dynamics.Command {
	if state.Time > 3 && state.Time < 8 {
		return dynamics.Command{GimbalY: -0.08}
	}
	return dynamics.Command{}
}

func (g *gncBangBang) Reset()       {}
func (g *gncBangBang) Name() string { return "bangbang-test" }
