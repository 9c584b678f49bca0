package orbital

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/gravity"
)

// State is a 3DOF translational orbital state in the ECI frame.
type State struct {
	Time float64
	Pos  r3.Vec // m
	Vel  r3.Vec // m/s
}

// Altitude returns height above the equatorial radius.
func (s State) Altitude() float64 {
	return r3.Norm(s.Pos) - gravity.REarthECI
}

// Speed returns the inertial speed.
func (s State) Speed() float64 {
	return r3.Norm(s.Vel)
}

// Propagate integrates the orbit for duration seconds at fixed dt
// under point-mass gravity, or point-mass plus J2 when useJ2 is set.
// The returned trajectory includes the initial state.
func Propagate(initial State, dt, duration float64, useJ2 bool) []State {
	accel := gravity.PointMassECI
	if useJ2 {
		accel = gravity.J2ECI
	}

	steps := int(duration / dt)
	trajectory := make([]State, 0, steps+1)
	state := initial
	trajectory = append(trajectory, state)

	for i := 0; i < steps; i++ {
		state = rk4Step(state, dt, accel)
		trajectory = append(trajectory, state)
	}
	return trajectory
}

// rk4Step advances the orbital state one fixed RK4 step under the
// given acceleration field.
func rk4Step(s State, dt float64, accel func(r3.Vec) r3.Vec) State {
	k1r, k1v := s.Vel, accel(s.Pos)
	k2r := r3.Add(s.Vel, r3.Scale(dt*0.5, k1v))
	k2v := accel(r3.Add(s.Pos, r3.Scale(dt*0.5, k1r)))
	k3r := r3.Add(s.Vel, r3.Scale(dt*0.5, k2v))
	k3v := accel(r3.Add(s.Pos, r3.Scale(dt*0.5, k2r)))
	k4r := r3.Add(s.Vel, r3.Scale(dt, k3v))
	k4v := accel(r3.Add(s.Pos, r3.Scale(dt, k3r)))

	dt6 := dt / 6.0
	return State{
		Time: s.Time + dt,
		Pos: r3.Add(s.Pos, r3.Scale(dt6,
			r3.Add(r3.Add(k1r, r3.Scale(2, k2r)), r3.Add(r3.Scale(2, k3r), k4r)))),
		Vel: r3.Add(s.Vel, r3.Scale(dt6,
			r3.Add(r3.Add(k1v, r3.Scale(2, k2v)), r3.Add(r3.Scale(2, k3v), k4v)))),
	}
}
