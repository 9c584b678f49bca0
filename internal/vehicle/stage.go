// Package vehicle defines the immutable vehicle configuration records:
// stages, missions, and their builders.
package vehicle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/gravity"
)

// Stage is one stage of a multi-stage rocket. Fields are fixed after
// construction; the simulation never mutates a Stage.
type Stage struct {
	Name           string
	DryMass        float64 // kg, structure + payload + recovery
	PropellantMass float64 // kg
	Thrust         float64 // N, constant over the burn
	Isp            float64 // s
	Cd             float64 // drag coefficient
	Area           float64 // aerodynamic reference area, m^2
	Inertia        r3.Vec  // principal moments [Ixx, Iyy, Izz], kg*m^2
	NozzleOffset   float64 // CG to nozzle distance, m (positive = nozzle behind CG)
	CPOffset       float64 // CG to CP distance, m (positive = CP ahead, stable)
	TVCMax         float64 // max gimbal angle, rad

	// Empirical aerodynamic tunables. The defaults suit a slender
	// sounding-rocket body and do not generalize to other geometries.
	CNAlpha       float64 // normal force coefficient slope
	DampingFactor float64 // rotational damping scale on q*Area
}

// MassFlow returns the propellant mass flow rate, thrust / (Isp * g0).
func (s Stage) MassFlow() float64 {
	return s.Thrust / (s.Isp * gravity.G0)
}

// TotalMass returns the wet mass of the stage.
func (s Stage) TotalMass() float64 {
	return s.DryMass + s.PropellantMass
}

// BurnTime returns the burn duration implied by propellant and mass
// flow, or 0 for an unpowered stage.
func (s Stage) BurnTime() float64 {
	if s.Thrust > 0 {
		return s.PropellantMass / s.MassFlow()
	}
	return 0
}

// DeltaV returns the ideal velocity change of this stage carrying the
// given payload mass (Tsiolkovsky rocket equation).
func (s Stage) DeltaV(payloadMass float64) float64 {
	m0 := s.TotalMass() + payloadMass
	mf := s.DryMass + payloadMass
	return s.Isp * gravity.G0 * math.Log(m0/mf)
}

// StageBuilder assembles a Stage with sensible sounding-rocket
// defaults. Every setter returns the builder for chaining.
type StageBuilder struct {
	stage Stage
}

// NewStageBuilder returns a builder preloaded with defaults.
func NewStageBuilder(name string) *StageBuilder {
	return &StageBuilder{stage: Stage{
		Name:           name,
		DryMass:        10.0,
		PropellantMass: 5.0,
		Thrust:         1000.0,
		Isp:            220.0,
		Cd:             0.3,
		Area:           0.01,
		Inertia:        r3.Vec{X: 5.0, Y: 5.0, Z: 0.5},
		NozzleOffset:   1.0,
		CPOffset:       0.3,
		TVCMax:         0.1,
		CNAlpha:        2.0,
		DampingFactor:  0.5,
	}}
}

func (b *StageBuilder) DryMass(v float64) *StageBuilder        { b.stage.DryMass = v; return b }
func (b *StageBuilder) PropellantMass(v float64) *StageBuilder { b.stage.PropellantMass = v; return b }
func (b *StageBuilder) Thrust(v float64) *StageBuilder         { b.stage.Thrust = v; return b }
func (b *StageBuilder) Isp(v float64) *StageBuilder            { b.stage.Isp = v; return b }
func (b *StageBuilder) Cd(v float64) *StageBuilder             { b.stage.Cd = v; return b }
func (b *StageBuilder) Area(v float64) *StageBuilder           { b.stage.Area = v; return b }
func (b *StageBuilder) Inertia(v r3.Vec) *StageBuilder         { b.stage.Inertia = v; return b }
func (b *StageBuilder) NozzleOffset(v float64) *StageBuilder   { b.stage.NozzleOffset = v; return b }
func (b *StageBuilder) CPOffset(v float64) *StageBuilder       { b.stage.CPOffset = v; return b }
func (b *StageBuilder) TVCMax(v float64) *StageBuilder         { b.stage.TVCMax = v; return b }
func (b *StageBuilder) CNAlpha(v float64) *StageBuilder        { b.stage.CNAlpha = v; return b }
func (b *StageBuilder) DampingFactor(v float64) *StageBuilder  { b.stage.DampingFactor = v; return b }

// Build returns the assembled Stage.
func (b *StageBuilder) Build() Stage {
	return b.stage
}
