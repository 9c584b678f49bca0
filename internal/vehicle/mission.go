package vehicle

import (
	"errors"
	"fmt"
)

// Domain errors raised by mission validation.
var (
	ErrNoStages = errors.New("vehicle: mission has no stages")
	ErrBadStage = errors.New("vehicle: degenerate stage configuration")
)

// Mission is an ordered, non-empty sequence of stages. Stage 0 burns
// first. A Mission is immutable for the duration of a simulation run.
type Mission struct {
	Name   string
	Stages []Stage
}

// TotalMass returns the combined wet mass of all stages.
func (m Mission) TotalMass() float64 {
	total := 0.0
	for _, s := range m.Stages {
		total += s.TotalMass()
	}
	return total
}

// TotalDeltaV returns the ideal mission delta-v: each stage's rocket
// equation with the wet mass of all upper stages as its payload.
func (m Mission) TotalDeltaV() float64 {
	dv := 0.0
	for i, s := range m.Stages {
		dv += s.DeltaV(m.UpperStagesMass(i))
	}
	return dv
}

// UpperStagesMass returns the combined wet mass of all stages above the
// given index.
func (m Mission) UpperStagesMass(idx int) float64 {
	mass := 0.0
	for _, s := range m.Stages[min(idx+1, len(m.Stages)):] {
		mass += s.TotalMass()
	}
	return mass
}

// ActiveStage returns the stage at idx, or ok=false once the index has
// run past the last stage (all propellant spent).
func (m Mission) ActiveStage(idx int) (Stage, bool) {
	if idx < 0 || idx >= len(m.Stages) {
		return Stage{}, false
	}
	return m.Stages[idx], true
}

// Validate rejects degenerate configurations before they reach the
// integrator, where they would silently diverge.
func (m Mission) Validate() error {
	if len(m.Stages) == 0 {
		return ErrNoStages
	}
	for i, s := range m.Stages {
		if s.DryMass <= 0 {
			return fmt.Errorf("%w: stage %d dry mass %g", ErrBadStage, i, s.DryMass)
		}
		if s.PropellantMass < 0 {
			return fmt.Errorf("%w: stage %d propellant mass %g", ErrBadStage, i, s.PropellantMass)
		}
		if s.PropellantMass > 0 && s.Thrust <= 0 {
			return fmt.Errorf("%w: stage %d carries propellant but thrust is %g", ErrBadStage, i, s.Thrust)
		}
		if s.Thrust > 0 && s.Isp <= 0 {
			return fmt.Errorf("%w: stage %d thrust without positive Isp", ErrBadStage, i)
		}
		if s.Inertia.X <= 0 || s.Inertia.Y <= 0 || s.Inertia.Z <= 0 {
			return fmt.Errorf("%w: stage %d non-positive inertia", ErrBadStage, i)
		}
	}
	return nil
}

// MissionBuilder assembles a Mission stage by stage.
type MissionBuilder struct {
	name   string
	stages []Stage
}

func NewMissionBuilder(name string) *MissionBuilder {
	return &MissionBuilder{name: name}
}

// Stage appends a stage; stages burn in the order added.
func (b *MissionBuilder) Stage(s Stage) *MissionBuilder {
	b.stages = append(b.stages, s)
	return b
}

func (b *MissionBuilder) Build() Mission {
	return Mission{Name: b.name, Stages: b.stages}
}
