// Package metrics provides run metrics that plug into the simulation
// loop as observers and reduce a flight to scalar figures of merit.
package metrics

import (
	"math"

	"github.com/san-kum/rocketsim/internal/atmosphere"
	"github.com/san-kum/rocketsim/internal/dynamics"
)

// ControlEffort integrates |gimbal| over time across both axes; lower
// means the controller worked less to fly the profile.
type ControlEffort struct {
	total    float64
	prevTime float64
	started  bool
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(state dynamics.State, cmd dynamics.Command) {
	if c.started {
		dt := state.Time - c.prevTime
		c.total += (math.Abs(cmd.GimbalY) + math.Abs(cmd.GimbalZ)) * dt
	}
	c.prevTime = state.Time
	c.started = true
}

func (c *ControlEffort) Value() float64 { return c.total }

func (c *ControlEffort) Reset() {
	c.total = 0
	c.prevTime = 0
	c.started = false
}

// MaxQ tracks the maximum dynamic pressure seen during the flight, Pa.
type MaxQ struct {
	max float64
}

func (m *MaxQ) Name() string { return "max_q" }

func (m *MaxQ) Observe(state dynamics.State, _ dynamics.Command) {
	rho := atmosphere.ISA(math.Max(state.Pos.Z, 0)).Density
	speed := state.Speed()
	q := 0.5 * rho * speed * speed
	if q > m.max {
		m.max = q
	}
}

func (m *MaxQ) Value() float64 { return m.max }

func (m *MaxQ) Reset() { m.max = 0 }
