package gnc

import (
	"math"

	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// TVC is the default flight controller: the pitch program feeding two
// independent PID loops, one per gimbal axis. Output is not clamped
// here; the force model clamps to the stage's gimbal travel.
type TVC struct {
	Program  PitchProgram
	PitchPID *PID
	YawPID   *PID
}

// NewTVC returns a TVC controller with gains tuned for a typical
// sounding rocket (Ixx ~5 kg*m^2, nozzle offset ~1 m).
func NewTVC() *TVC {
	return &TVC{
		Program:  DefaultPitchProgram(),
		PitchPID: NewPID(2.0, 0.1, 0.5),
		YawPID:   NewPID(2.0, 0.1, 0.5),
	}
}

// Control implements Controller.
func (c *TVC) Control(state dynamics.State, mission vehicle.Mission, dt float64) dynamics.Command {
	desiredPitch := c.Program.DesiredPitch(state, mission)
	pitchError := desiredPitch - state.Pitch()

	// Yaw: hold the body axis's cross-range component at zero.
	bz := state.BodyZ()
	yawError := -math.Atan2(bz.X, math.Hypot(bz.Y, bz.Z))

	return dynamics.Command{
		GimbalY: c.PitchPID.Update(pitchError, dt),
		GimbalZ: c.YawPID.Update(yawError, dt),
	}
}

// Reset clears both PID loops.
func (c *TVC) Reset() {
	c.PitchPID.Reset()
	c.YawPID.Reset()
}

func (c *TVC) Name() string { return "tvc" }
