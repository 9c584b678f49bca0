// Package gravity provides the gravity models shared by the 6DOF flight
// engine (local ENU frame) and the orbital propagator (ECI frame).
package gravity

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Physical constants.
const (
	G0          = 9.80665   // standard gravity, m/s^2
	EarthRadius = 6371000.0 // mean Earth radius, m

	MuEarth   = 3.986004418e14 // gravitational parameter, m^3/s^2
	REarthECI = 6378137.0      // equatorial radius, m
	J2Earth   = 1.08263e-3
)

// Accel returns the inverse-square gravitational acceleration at the
// given altitude, in the ENU frame (negative altitude clamps to 0).
func Accel(altitude float64) r3.Vec {
	alt := math.Max(altitude, 0)
	ratio := EarthRadius / (EarthRadius + alt)
	return r3.Vec{Z: -G0 * ratio * ratio}
}

// Force returns the gravitational force on a body of the given mass.
func Force(altitude, mass float64) r3.Vec {
	return r3.Scale(mass, Accel(altitude))
}

// PointMassECI returns point-mass gravitational acceleration for an ECI
// position vector.
func PointMassECI(pos r3.Vec) r3.Vec {
	r := r3.Norm(pos)
	if r < 1.0 {
		return r3.Vec{}
	}
	return r3.Scale(-MuEarth/(r*r*r), pos)
}

// J2ECI returns gravitational acceleration including the J2 oblateness
// perturbation for an ECI position vector.
func J2ECI(pos r3.Vec) r3.Vec {
	r := r3.Norm(pos)
	if r < 1.0 {
		return r3.Vec{}
	}
	r2 := r * r
	z2 := pos.Z * pos.Z

	muOverR3 := MuEarth / (r2 * r)
	j2Coeff := 1.5 * J2Earth * REarthECI * REarthECI / r2

	xyFactor := muOverR3 * (1.0 + j2Coeff*(1.0-5.0*z2/r2))
	zFactor := muOverR3 * (1.0 + j2Coeff*(3.0-5.0*z2/r2))

	return r3.Vec{
		X: -xyFactor * pos.X,
		Y: -xyFactor * pos.Y,
		Z: -zFactor * pos.Z,
	}
}
