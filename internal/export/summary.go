// Package export turns a recorded flight into files: a row-per-sample
// trajectory CSV and a key-value flight summary JSON. The simulation
// core never imports this package.
package export

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/atmosphere"
	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/gravity"
)

// FlightSummary holds the headline figures of one flight.
type FlightSummary struct {
	ApogeeM     float64 `json:"apogee_m"`
	ApogeeTime  float64 `json:"apogee_time_s"`
	MaxSpeed    float64 `json:"max_speed_ms"`
	MaxMach     float64 `json:"max_mach"`
	MaxAccel    float64 `json:"max_accel_ms2"`
	MaxAccelG   float64 `json:"max_accel_g"`
	FlightTime  float64 `json:"flight_time_s"`
	ImpactSpeed float64 `json:"impact_speed_ms"`
}

// Summarize reduces a trajectory to its FlightSummary. The trajectory
// must be non-empty.
func Summarize(trajectory []dynamics.State) FlightSummary {
	apogee := trajectory[0]
	maxSpeed := 0.0
	maxMach := 0.0
	for _, s := range trajectory {
		if s.Pos.Z > apogee.Pos.Z {
			apogee = s
		}
		speed := s.Speed()
		if speed > maxSpeed {
			maxSpeed = speed
		}
		ss := atmosphere.ISA(math.Max(s.Pos.Z, 0)).SoundSpeed
		if mach := speed / ss; mach > maxMach {
			maxMach = mach
		}
	}

	// Acceleration by finite difference between consecutive samples.
	maxAccel := 0.0
	for i := 1; i < len(trajectory); i++ {
		dt := trajectory[i].Time - trajectory[i-1].Time
		if dt <= 0 {
			continue
		}
		a := r3.Norm(r3.Sub(trajectory[i].Vel, trajectory[i-1].Vel)) / dt
		if a > maxAccel {
			maxAccel = a
		}
	}

	last := trajectory[len(trajectory)-1]
	return FlightSummary{
		ApogeeM:     apogee.Pos.Z,
		ApogeeTime:  apogee.Time,
		MaxSpeed:    maxSpeed,
		MaxMach:     maxMach,
		MaxAccel:    maxAccel,
		MaxAccelG:   maxAccel / gravity.G0,
		FlightTime:  last.Time,
		ImpactSpeed: last.Speed(),
	}
}
