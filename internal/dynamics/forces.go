package dynamics

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/atmosphere"
	"github.com/san-kum/rocketsim/internal/gravity"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// Speed floors guarding the aerodynamic terms against division
// instability at rest.
const (
	dragSpeedFloor = 1e-6 // m/s, below this drag is zero
	aeroSpeedFloor = 1.0  // m/s, below this moments are zero
	cpOffsetFloor  = 1e-6 // m, below this the restoring moment is off
)

// burnCutoff is the remaining-propellant threshold under which the
// stage stops producing thrust, kg.
const burnCutoff = 0.01

// Derivatives computes the full 6DOF state derivative for the active
// stage under the given guidance command.
//
// Contributions:
//  1. inverse-square gravity (inertial)
//  2. thrust with TVC gimbal deflection (body, rotated to inertial)
//  3. quadratic drag opposing velocity
//  4. nozzle-offset thrust torque
//  5. aerodynamic restoring moment from the CP-CG offset
//  6. aerodynamic damping moment
//
// Past the last stage the vehicle is in gravity-only free fall.
func Derivatives(state State, mission vehicle.Mission, cmd Command) Deriv {
	stage, ok := mission.ActiveStage(state.StageIdx)
	if !ok {
		return freeFall(state)
	}

	alt := math.Max(state.Pos.Z, 0)
	atm := atmosphere.ISA(alt)

	remainingProp := state.Mass - stage.DryMass - mission.UpperStagesMass(state.StageIdx)
	burning := remainingProp > burnCutoff && stage.Thrust > 0

	fGravity := gravity.Force(alt, state.Mass)

	// Thrust deflected from body +Z by the clamped gimbal angles.
	var fThrustBody r3.Vec
	if burning {
		gy := clamp(cmd.GimbalY, stage.TVCMax)
		gz := clamp(cmd.GimbalZ, stage.TVCMax)
		fThrustBody = r3.Vec{
			X: stage.Thrust * math.Sin(gz),
			Y: stage.Thrust * math.Sin(gy),
			Z: stage.Thrust * math.Cos(gy) * math.Cos(gz),
		}
	}
	fThrustInertial := Rotate(state.Att, fThrustBody)

	speed := state.Speed()
	var fDrag r3.Vec
	if speed > dragSpeedFloor {
		qDyn := 0.5 * atm.Density * speed * speed
		fDrag = r3.Scale(-qDyn*stage.Cd*stage.Area/speed, state.Vel)
	}

	fTotal := r3.Add(r3.Add(fGravity, fThrustInertial), fDrag)
	accel := r3.Scale(1/state.Mass, fTotal)

	// Torques accumulate in the body frame. Gravity acts through the
	// center of mass and contributes none.
	var torque r3.Vec

	if burning {
		arm := r3.Vec{Z: -stage.NozzleOffset}
		torque = r3.Add(torque, r3.Cross(arm, fThrustBody))
	}

	if speed > aeroSpeedFloor && math.Abs(stage.CPOffset) > cpOffsetFloor {
		velBody := RotateInv(state.Att, state.Vel)
		qDyn := 0.5 * atm.Density * speed * speed
		// Angle-of-attack components from the body-frame velocity.
		alphaY := math.Atan2(velBody.Y, velBody.Z) // pitch plane
		alphaZ := math.Atan2(velBody.X, velBody.Z) // yaw plane
		normalForce := qDyn * stage.Area * stage.CNAlpha
		// Positive CPOffset (CP ahead of CG) restores toward zero AoA.
		torque.X += -normalForce * alphaY * stage.CPOffset
		torque.Y += normalForce * alphaZ * stage.CPOffset
	}

	if speed > aeroSpeedFloor {
		qDyn := 0.5 * atm.Density * speed * speed
		damp := qDyn * stage.Area * stage.DampingFactor
		torque = r3.Sub(torque, r3.Scale(damp, state.Omega))
	}

	// Euler's rigid-body equation with a diagonal inertia tensor:
	// I*domega = torque - omega x (I*omega), per principal axis.
	i := stage.Inertia
	w := state.Omega
	iw := r3.Vec{X: i.X * w.X, Y: i.Y * w.Y, Z: i.Z * w.Z}
	dOmega := r3.Vec{
		X: (torque.X - (w.Y*iw.Z - w.Z*iw.Y)) / i.X,
		Y: (torque.Y - (w.Z*iw.X - w.X*iw.Z)) / i.Y,
		Z: (torque.Z - (w.X*iw.Y - w.Y*iw.X)) / i.Z,
	}

	dMass := 0.0
	if burning {
		dMass = -stage.MassFlow()
	}

	return Deriv{
		DPos:   state.Vel,
		DVel:   accel,
		DAtt:   AttRate(state.Att, state.Omega),
		DOmega: dOmega,
		DMass:  dMass,
	}
}

// freeFall is the derivative after every stage is spent: gravity only,
// no torque, no mass flow.
func freeFall(state State) Deriv {
	alt := math.Max(state.Pos.Z, 0)
	return Deriv{
		DPos: state.Vel,
		DVel: gravity.Accel(alt),
		DAtt: quat.Number{},
	}
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
