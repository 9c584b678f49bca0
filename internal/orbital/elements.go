// Package orbital is the analytical orbital-mechanics subsystem:
// Keplerian elements, orbit propagation, and impulsive transfer
// planning. It shares only the gravity primitives with the 6DOF flight
// engine and has no runtime dependency on it.
package orbital

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/gravity"
)

// KeplerianElements are the classical orbital elements.
type KeplerianElements struct {
	SMA      float64 // semi-major axis, m
	Ecc      float64 // eccentricity
	Inc      float64 // inclination, rad
	RAAN     float64 // right ascension of ascending node, rad
	ArgP     float64 // argument of periapsis, rad
	TrueAnom float64 // true anomaly, rad
}

// Circular returns a circular orbit at the given altitude and
// inclination.
func Circular(altitude, inc float64) KeplerianElements {
	return KeplerianElements{
		SMA: gravity.REarthECI + altitude,
		Inc: inc,
	}
}

// StateVector converts the elements to an ECI position and velocity.
func (k KeplerianElements) StateVector() (pos, vel r3.Vec) {
	return k.StateVectorMu(gravity.MuEarth)
}

// StateVectorMu converts with an explicit gravitational parameter.
func (k KeplerianElements) StateVectorMu(mu float64) (pos, vel r3.Vec) {
	p := k.SMA * (1 - k.Ecc*k.Ecc) // semi-latus rectum
	r := p / (1 + k.Ecc*math.Cos(k.TrueAnom))

	// Perifocal (PQW) frame.
	rPQW := r3.Vec{
		X: r * math.Cos(k.TrueAnom),
		Y: r * math.Sin(k.TrueAnom),
	}
	sqrtMuP := math.Sqrt(mu / p)
	vPQW := r3.Vec{
		X: -sqrtMuP * math.Sin(k.TrueAnom),
		Y: sqrtMuP * (k.Ecc + math.Cos(k.TrueAnom)),
	}

	cosRAAN, sinRAAN := math.Cos(k.RAAN), math.Sin(k.RAAN)
	cosArgP, sinArgP := math.Cos(k.ArgP), math.Sin(k.ArgP)
	cosInc, sinInc := math.Cos(k.Inc), math.Sin(k.Inc)

	rot := func(v r3.Vec) r3.Vec {
		return r3.Vec{
			X: (cosRAAN*cosArgP-sinRAAN*sinArgP*cosInc)*v.X +
				(-cosRAAN*sinArgP-sinRAAN*cosArgP*cosInc)*v.Y,
			Y: (sinRAAN*cosArgP+cosRAAN*sinArgP*cosInc)*v.X +
				(-sinRAAN*sinArgP+cosRAAN*cosArgP*cosInc)*v.Y,
			Z: sinArgP*sinInc*v.X + cosArgP*sinInc*v.Y,
		}
	}

	return rot(rPQW), rot(vPQW)
}

// FromStateVector recovers Keplerian elements from an ECI state.
func FromStateVector(pos, vel r3.Vec) KeplerianElements {
	return FromStateVectorMu(pos, vel, gravity.MuEarth)
}

// FromStateVectorMu recovers elements with an explicit gravitational
// parameter.
func FromStateVectorMu(pos, vel r3.Vec, mu float64) KeplerianElements {
	r := r3.Norm(pos)
	v := r3.Norm(vel)

	h := r3.Cross(pos, vel)
	hMag := r3.Norm(h)

	// Node vector.
	n := r3.Vec{X: -h.Y, Y: h.X}
	nMag := r3.Norm(n)

	// Eccentricity vector.
	eVec := r3.Scale(1/mu, r3.Sub(
		r3.Scale(v*v-mu/r, pos),
		r3.Scale(r3.Dot(pos, vel), vel),
	))
	ecc := r3.Norm(eVec)

	energy := 0.5*v*v - mu/r
	var sma float64
	if math.Abs(ecc) < 1-1e-10 {
		sma = -mu / (2 * energy)
	} else {
		sma = hMag * hMag / (mu * math.Abs(1-ecc*ecc))
	}

	inc := math.Acos(clamp(h.Z / hMag))

	raan := 0.0
	if nMag > 1e-10 {
		raan = math.Acos(clamp(n.X / nMag))
		if n.Y < 0 {
			raan = 2*math.Pi - raan
		}
	}

	argp := 0.0
	if nMag > 1e-10 && ecc > 1e-10 {
		argp = math.Acos(clamp(r3.Dot(n, eVec) / (nMag * ecc)))
		if eVec.Z < 0 {
			argp = 2*math.Pi - argp
		}
	}

	trueAnom := 0.0
	if ecc > 1e-10 {
		trueAnom = math.Acos(clamp(r3.Dot(eVec, pos) / (ecc * r)))
		if r3.Dot(pos, vel) < 0 {
			trueAnom = 2*math.Pi - trueAnom
		}
	}

	return KeplerianElements{
		SMA:      sma,
		Ecc:      ecc,
		Inc:      inc,
		RAAN:     raan,
		ArgP:     argp,
		TrueAnom: trueAnom,
	}
}

// Period returns the orbital period for an elliptical orbit, s.
func (k KeplerianElements) Period() float64 {
	return k.PeriodMu(gravity.MuEarth)
}

func (k KeplerianElements) PeriodMu(mu float64) float64 {
	return 2 * math.Pi * math.Sqrt(k.SMA*k.SMA*k.SMA/mu)
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
