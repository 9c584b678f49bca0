package gnc

import (
	"math"

	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// gravityTurnSpeedFloor is the speed above which the gravity-turn phase
// follows the flight-path angle, m/s.
const gravityTurnSpeedFloor = 5.0

// PitchProgram is the three-phase ascent guidance law:
//
//	phase 1: vertical ascent (90 deg) until VerticalTime
//	phase 2: linear pitchover to TargetPitch until PitchoverEnd
//	phase 3: gravity turn following the flight-path angle
type PitchProgram struct {
	VerticalTime float64 // s of vertical ascent
	PitchoverEnd float64 // s, end of the pitchover ramp
	TargetPitch  float64 // rad from horizontal at end of pitchover
}

// DefaultPitchProgram returns the sounding-rocket profile: 2 s
// vertical, pitchover to 45 deg by t=15 s, then gravity turn.
func DefaultPitchProgram() PitchProgram {
	return PitchProgram{
		VerticalTime: 2.0,
		PitchoverEnd: 15.0,
		TargetPitch:  45.0 * math.Pi / 180.0,
	}
}

// DesiredPitch returns the commanded pitch angle (rad from horizontal)
// for the current state.
func (pp PitchProgram) DesiredPitch(state dynamics.State, mission vehicle.Mission) float64 {
	_ = mission // reserved for per-mission tuning
	t := state.Time

	switch {
	case t < pp.VerticalTime:
		return math.Pi / 2
	case t < pp.PitchoverEnd:
		frac := (t - pp.VerticalTime) / (pp.PitchoverEnd - pp.VerticalTime)
		return math.Pi/2 + frac*(pp.TargetPitch-math.Pi/2)
	default:
		speed := state.Speed()
		if speed > gravityTurnSpeedFloor {
			return math.Asin(state.Vel.Z / speed)
		}
		return pp.TargetPitch
	}
}
