package vehicle

import "gonum.org/v1/gonum/spatial/r3"

// Pathfinder is a two-stage sounding rocket used by the CLI defaults
// and the regression tests.
func Pathfinder() Mission {
	return NewMissionBuilder("Pathfinder").
		Stage(NewStageBuilder("S1-Booster").
			DryMass(40.0).
			PropellantMass(25.0).
			Thrust(5000.0).
			Isp(220.0).
			Cd(0.35).
			Area(0.02).
			Inertia(r3.Vec{X: 20.0, Y: 20.0, Z: 2.0}).
			NozzleOffset(1.5).
			CPOffset(0.4).
			TVCMax(0.1).
			Build()).
		Stage(NewStageBuilder("S2-Sustainer").
			DryMass(8.0).
			PropellantMass(6.0).
			Thrust(1200.0).
			Isp(250.0).
			Cd(0.28).
			Area(0.008).
			Inertia(r3.Vec{X: 2.0, Y: 2.0, Z: 0.2}).
			NozzleOffset(0.6).
			CPOffset(0.25).
			TVCMax(0.08).
			Build()).
		Build()
}

// SinglePathfinder is a single-stage variant of the same airframe.
func SinglePathfinder() Mission {
	return NewMissionBuilder("Pathfinder-1").
		Stage(NewStageBuilder("Main").
			DryMass(20.0).
			PropellantMass(10.0).
			Thrust(2000.0).
			Isp(220.0).
			Cd(0.3).
			Area(0.008).
			Inertia(r3.Vec{X: 5.0, Y: 5.0, Z: 0.5}).
			NozzleOffset(1.0).
			CPOffset(0.3).
			TVCMax(0.1).
			Build()).
		Build()
}

// Presets maps preset names accepted by the CLI and config loader.
var Presets = map[string]func() Mission{
	"pathfinder": Pathfinder,
	"single":     SinglePathfinder,
}
