// Package gnc implements guidance and attitude control: the controller
// capability the simulation loop closes around, a PID primitive, the
// three-phase pitch program, and the default TVC controller composing
// them.
package gnc

import (
	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// Controller produces one gimbal command per simulation step. The
// runner depends only on this interface, so arbitrary control laws can
// be substituted.
//
// Implementations may keep mutable state across calls (PID
// accumulators); a Controller instance must not be shared between
// concurrent simulation runs.
type Controller interface {
	// Control computes the gimbal command for the current state.
	Control(state dynamics.State, mission vehicle.Mission, dt float64) dynamics.Command

	// Reset clears internal state (e.g. PID integrators).
	Reset()

	// Name is a human-readable label for diagnostics.
	Name() string
}

// Zero is a controller that never deflects the gimbal.
type Zero struct{}

func (Zero) Control(dynamics.State, vehicle.Mission, float64) dynamics.Command {
	return dynamics.Command{}
}

func (Zero) Reset()       {}
func (Zero) Name() string { return "zero" }
