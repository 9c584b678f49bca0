package gnc

import (
	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// BangBang is an open-loop controller that kicks the vehicle into a
// pitchover with a fixed gimbal deflection over a time window, then
// holds zero. Useful as the simplest non-trivial control law and as a
// reference point for controller comparisons.
type BangBang struct {
	PitchoverStart float64 // s
	PitchoverEnd   float64 // s
	GimbalKick     float64 // rad, applied nose-down during the window
}

func (b *BangBang) Control(state dynamics.State, _ vehicle.Mission, _ float64) dynamics.Command {
	if state.Time > b.PitchoverStart && state.Time < b.PitchoverEnd {
		return dynamics.Command{GimbalY: -b.GimbalKick}
	}
	return dynamics.Command{}
}

func (b *BangBang) Reset()       {}
func (b *BangBang) Name() string { return "bangbang" }
