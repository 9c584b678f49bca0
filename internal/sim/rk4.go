package sim

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// RK4Step advances the state by one fixed timestep with classical
// 4th-order Runge-Kutta. The guidance command is held constant across
// all four derivative evaluations; the control loop runs once per
// outer step, not at sub-steps.
//
// The four attitude-rate estimates are combined as raw quaternions and
// normalized once afterward. Normalizing each sub-stage instead would
// change the numerical result.
func RK4Step(state dynamics.State, mission vehicle.Mission, cmd dynamics.Command, dt float64) dynamics.State {
	k1 := dynamics.Derivatives(state, mission, cmd)
	k2 := dynamics.Derivatives(state.Apply(k1, dt*0.5), mission, cmd)
	k3 := dynamics.Derivatives(state.Apply(k2, dt*0.5), mission, cmd)
	k4 := dynamics.Derivatives(state.Apply(k3, dt), mission, cmd)

	dt6 := dt / 6.0

	attRaw := quat.Add(state.Att, quat.Scale(dt6, quat.Add(
		quat.Add(k1.DAtt, quat.Scale(2, k2.DAtt)),
		quat.Add(quat.Scale(2, k3.DAtt), k4.DAtt),
	)))

	return dynamics.State{
		Time:     state.Time + dt,
		Pos:      r3.Add(state.Pos, r3.Scale(dt6, combine(k1.DPos, k2.DPos, k3.DPos, k4.DPos))),
		Vel:      r3.Add(state.Vel, r3.Scale(dt6, combine(k1.DVel, k2.DVel, k3.DVel, k4.DVel))),
		Att:      dynamics.Normalize(attRaw),
		Omega:    r3.Add(state.Omega, r3.Scale(dt6, combine(k1.DOmega, k2.DOmega, k3.DOmega, k4.DOmega))),
		Mass:     math.Max(state.Mass+dt6*(k1.DMass+2*k2.DMass+2*k3.DMass+k4.DMass), 0),
		StageIdx: state.StageIdx,
	}
}

// combine returns the RK4 weighted sum k1 + 2*k2 + 2*k3 + k4.
func combine(k1, k2, k3, k4 r3.Vec) r3.Vec {
	return r3.Add(r3.Add(k1, r3.Scale(2, k2)), r3.Add(r3.Scale(2, k3), k4))
}
