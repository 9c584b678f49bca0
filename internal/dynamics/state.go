// Package dynamics holds the 6DOF rigid-body state and its equations
// of motion: gravity, gimbaled thrust, aerodynamic drag, and the
// body-frame torque balance.
package dynamics

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is the full rigid-body state at one instant.
// Frame: inertial East-North-Up, origin at the launch site. Att maps
// body frame to inertial frame and stays unit length at every recorded
// sample.
type State struct {
	Time     float64     // s since ignition
	Pos      r3.Vec      // m
	Vel      r3.Vec      // m/s
	Att      quat.Number // body-to-inertial attitude, unit quaternion
	Omega    r3.Vec      // rad/s, body frame
	Mass     float64     // kg
	StageIdx int         // active stage index, never decreases
}

// Deriv is the time derivative of a State. DAtt is a raw (non-unit)
// quaternion rate; the integrator normalizes after combining stages.
type Deriv struct {
	DPos   r3.Vec
	DVel   r3.Vec
	DAtt   quat.Number
	DOmega r3.Vec
	DMass  float64
}

// Command is the guidance output for one step: thrust-vector gimbal
// deflections in radians. GimbalY steers pitch (positive = nose up),
// GimbalZ steers yaw (positive = nose right). Values are clamped to
// the active stage's gimbal travel by the force model, not here.
type Command struct {
	GimbalY float64
	GimbalZ float64
}

// Apply advances the state by d scaled by dt. This Euler sub-step is
// what RK4 uses to build its intermediate evaluation points; the
// attitude is renormalized and mass floored at zero.
func (s State) Apply(d Deriv, dt float64) State {
	return State{
		Time:     s.Time + dt,
		Pos:      r3.Add(s.Pos, r3.Scale(dt, d.DPos)),
		Vel:      r3.Add(s.Vel, r3.Scale(dt, d.DVel)),
		Att:      normalize(quat.Add(s.Att, quat.Scale(dt, d.DAtt))),
		Omega:    r3.Add(s.Omega, r3.Scale(dt, d.DOmega)),
		Mass:     math.Max(s.Mass+d.DMass*dt, 0),
		StageIdx: s.StageIdx,
	}
}

// Altitude returns the height above the launch plane.
func (s State) Altitude() float64 { return s.Pos.Z }

// Speed returns the inertial speed.
func (s State) Speed() float64 { return r3.Norm(s.Vel) }

// BodyZ returns the body +Z axis (nominal thrust direction) expressed
// in the inertial frame.
func (s State) BodyZ() r3.Vec {
	return Rotate(s.Att, r3.Vec{Z: 1})
}

// Pitch returns the angle of the body axis above local horizontal, rad.
func (s State) Pitch() float64 {
	z := s.BodyZ().Z
	return math.Asin(math.Max(-1, math.Min(1, z)))
}

// Alpha returns the angle of attack: the angle between the velocity
// vector and the body axis. Zero below a 1 m/s speed floor.
func (s State) Alpha() float64 {
	speed := s.Speed()
	if speed < 1.0 {
		return 0
	}
	cosAlpha := r3.Dot(s.Vel, s.BodyZ()) / speed
	return math.Acos(math.Max(-1, math.Min(1, cosAlpha)))
}
