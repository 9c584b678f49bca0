package vehicle

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/gravity"
)

func TestStageBuilderRoundTrip(t *testing.T) {
	inertia := r3.Vec{X: 7.5, Y: 7.5, Z: 0.75}
	s := NewStageBuilder("RT").
		DryMass(21.5).
		PropellantMass(11.25).
		Thrust(2345.0).
		Isp(231.0).
		Cd(0.31).
		Area(0.0093).
		Inertia(inertia).
		NozzleOffset(1.1).
		CPOffset(0.35).
		TVCMax(0.12).
		CNAlpha(2.2).
		DampingFactor(0.6).
		Build()

	if s.Name != "RT" {
		t.Errorf("name: got %q", s.Name)
	}
	// Exact: no field may be silently transformed.
	if s.DryMass != 21.5 || s.PropellantMass != 11.25 || s.Thrust != 2345.0 ||
		s.Isp != 231.0 || s.Cd != 0.31 || s.Area != 0.0093 ||
		s.Inertia != inertia || s.NozzleOffset != 1.1 || s.CPOffset != 0.35 ||
		s.TVCMax != 0.12 || s.CNAlpha != 2.2 || s.DampingFactor != 0.6 {
		t.Errorf("builder transformed a field: %+v", s)
	}
}

func TestStageDerivedQuantities(t *testing.T) {
	s := NewStageBuilder("S").
		DryMass(20).PropellantMass(10).Thrust(2000).Isp(220).Build()

	wantFlow := 2000.0 / (220.0 * gravity.G0)
	if math.Abs(s.MassFlow()-wantFlow) > 1e-12 {
		t.Errorf("mass flow: got %g, want %g", s.MassFlow(), wantFlow)
	}
	if s.TotalMass() != 30 {
		t.Errorf("total mass: got %g", s.TotalMass())
	}
	wantBurn := 10.0 / wantFlow
	if math.Abs(s.BurnTime()-wantBurn) > 1e-9 {
		t.Errorf("burn time: got %g, want %g", s.BurnTime(), wantBurn)
	}
	wantDV := 220 * gravity.G0 * math.Log(30.0/20.0)
	if math.Abs(s.DeltaV(0)-wantDV) > 1e-9 {
		t.Errorf("delta-v: got %g, want %g", s.DeltaV(0), wantDV)
	}
}

func TestUnpoweredStageBurnTime(t *testing.T) {
	s := NewStageBuilder("coast").Thrust(0).PropellantMass(0).Build()
	if s.BurnTime() != 0 {
		t.Errorf("unpowered stage burn time should be 0, got %g", s.BurnTime())
	}
}

func TestMissionTotals(t *testing.T) {
	m := Pathfinder()
	if got := m.TotalMass(); got != 40+25+8+6 {
		t.Errorf("total mass: got %g", got)
	}

	// Stage delta-v with upper stages as payload, summed.
	want := m.Stages[0].DeltaV(m.Stages[1].TotalMass()) + m.Stages[1].DeltaV(0)
	if math.Abs(m.TotalDeltaV()-want) > 1e-9 {
		t.Errorf("total delta-v: got %g, want %g", m.TotalDeltaV(), want)
	}
}

func TestUpperStagesMass(t *testing.T) {
	m := Pathfinder()
	if got := m.UpperStagesMass(0); got != 14 {
		t.Errorf("upper mass above stage 0: got %g, want 14", got)
	}
	if got := m.UpperStagesMass(1); got != 0 {
		t.Errorf("upper mass above last stage: got %g, want 0", got)
	}
}

func TestActiveStage(t *testing.T) {
	m := Pathfinder()
	if _, ok := m.ActiveStage(1); !ok {
		t.Error("stage 1 should be active")
	}
	if _, ok := m.ActiveStage(2); ok {
		t.Error("index past last stage should report not ok")
	}
	if _, ok := m.ActiveStage(-1); ok {
		t.Error("negative index should report not ok")
	}
}

func TestMissionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mission Mission
		wantErr error
	}{
		{"empty", Mission{Name: "e"}, ErrNoStages},
		{"zero dry mass", NewMissionBuilder("m").
			Stage(NewStageBuilder("s").DryMass(0).Build()).Build(), ErrBadStage},
		{"propellant without thrust", NewMissionBuilder("m").
			Stage(NewStageBuilder("s").PropellantMass(5).Thrust(0).Build()).Build(), ErrBadStage},
		{"valid", Pathfinder(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mission.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
