package dynamics

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the no-rotation attitude.
var Identity = quat.Number{Real: 1}

// Rotate applies the rotation q to v: q * v * q^-1 with v embedded as
// a pure quaternion. q must be unit length.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// RotateInv applies the inverse rotation of q to v (inertial to body
// for a body-to-inertial attitude).
func RotateInv(q quat.Number, v r3.Vec) r3.Vec {
	return Rotate(quat.Conj(q), v)
}

// normalize rescales q to unit length. A zero quaternion falls back to
// the identity rather than dividing by zero.
func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return Identity
	}
	return quat.Scale(1/n, q)
}

// Normalize is the exported form used by the integrator after the RK4
// weighted sum.
func Normalize(q quat.Number) quat.Number { return normalize(q) }

// AttRate returns the raw quaternion kinematic rate
// dq/dt = 0.5 * q ⊗ [0, omega], with omega in the body frame.
func AttRate(q quat.Number, omega r3.Vec) quat.Number {
	w := quat.Number{Imag: omega.X, Jmag: omega.Y, Kmag: omega.Z}
	return quat.Scale(0.5, quat.Mul(q, w))
}

// UnitError returns |1 - ||q|||, the drift from unit length.
func UnitError(q quat.Number) float64 {
	return math.Abs(1 - quat.Abs(q))
}
