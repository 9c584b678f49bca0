package orbital

import (
	"math"

	"github.com/san-kum/rocketsim/internal/gravity"
)

// HohmannTransfer describes a two-impulse transfer between circular
// orbits.
type HohmannTransfer struct {
	DV1          float64 // m/s, first burn (raise apoapsis)
	DV2          float64 // m/s, second burn (circularize)
	TotalDV      float64 // m/s
	TransferTime float64 // s, half the transfer-orbit period
	R1           float64 // m, initial orbit radius
	R2           float64 // m, final orbit radius
}

// Hohmann computes the transfer between two circular Earth orbits of
// the given radii (not altitudes).
func Hohmann(r1, r2 float64) HohmannTransfer {
	return HohmannMu(r1, r2, gravity.MuEarth)
}

// HohmannMu computes the transfer for an arbitrary central body.
func HohmannMu(r1, r2, mu float64) HohmannTransfer {
	aTransfer := (r1 + r2) / 2

	vCirc1 := math.Sqrt(mu / r1)
	vCirc2 := math.Sqrt(mu / r2)

	vTransfer1 := math.Sqrt(mu * (2/r1 - 1/aTransfer))
	vTransfer2 := math.Sqrt(mu * (2/r2 - 1/aTransfer))

	dv1 := math.Abs(vTransfer1 - vCirc1)
	dv2 := math.Abs(vCirc2 - vTransfer2)

	return HohmannTransfer{
		DV1:          dv1,
		DV2:          dv2,
		TotalDV:      dv1 + dv2,
		TransferTime: math.Pi * math.Sqrt(aTransfer*aTransfer*aTransfer/mu),
		R1:           r1,
		R2:           r2,
	}
}

// CircularVelocity returns the circular-orbit speed at radius r around
// Earth.
func CircularVelocity(r float64) float64 {
	return CircularVelocityMu(r, gravity.MuEarth)
}

func CircularVelocityMu(r, mu float64) float64 {
	return math.Sqrt(mu / r)
}
