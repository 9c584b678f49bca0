package gnc

import "math"

// integralLimit bounds the PID integral term (anti-windup).
const integralLimit = 1.0

// PID is a single-axis PID loop. The integral accumulator and previous
// error persist across calls until Reset, so each controlled axis needs
// its own instance.
type PID struct {
	Kp, Ki, Kd float64

	integral  float64
	prevError float64
}

// NewPID returns a PID loop with the given gains and zero state.
func NewPID(kp, ki, kd float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd}
}

// Update advances the loop by one step of size dt and returns the
// control output. The derivative term is zero when dt is zero.
func (p *PID) Update(err, dt float64) float64 {
	p.integral += err * dt
	p.integral = math.Max(-integralLimit, math.Min(integralLimit, p.integral))

	derivative := 0.0
	if dt > 0 {
		derivative = (err - p.prevError) / dt
	}
	p.prevError = err

	return p.Kp*err + p.Ki*p.integral + p.Kd*derivative
}

// Reset clears the integral accumulator and previous error.
func (p *PID) Reset() {
	p.integral = 0
	p.prevError = 0
}
