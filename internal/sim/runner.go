// Package sim drives the 6DOF simulation loop: one guidance update,
// one RK4 step, and one staging check per timestep, until the time
// limit or ground impact.
package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/rocketsim/internal/dynamics"
	"github.com/san-kum/rocketsim/internal/gnc"
	"github.com/san-kum/rocketsim/internal/vehicle"
)

// ErrInvalidConfig rejects non-positive timestep or duration.
var ErrInvalidConfig = errors.New("sim: invalid config")

// launchAltitude is the altitude above which the vehicle counts as
// launched; only then does alt <= 0 mean ground impact.
const launchAltitude = 1.0

// stagingCutoff is the remaining-propellant threshold that triggers
// stage separation, kg.
const stagingCutoff = 0.01

// trajectoryCapHint bounds the initial trajectory allocation for very
// long runs.
const trajectoryCapHint = 200000

// Config holds the fixed-step loop parameters for one run.
type Config struct {
	Dt      float64 // s
	MaxTime float64 // s, hard stop
}

// DefaultConfig is 200 Hz for 10 minutes; 6DOF attitude dynamics need
// the tight timestep.
func DefaultConfig() Config {
	return Config{Dt: 0.005, MaxTime: 600}
}

// Observer receives every post-step sample as it is produced.
type Observer interface {
	OnStep(state dynamics.State, cmd dynamics.Command)
}

// Metric observes a run and reduces it to a named scalar.
type Metric interface {
	Name() string
	Observe(state dynamics.State, cmd dynamics.Command)
	Value() float64
	Reset()
}

// Result is the full output of one mission run: parallel state and
// command sequences, detected events, and metric values.
type Result struct {
	Trajectory []dynamics.State
	Commands   []dynamics.Command
	Events     []Event
	Metrics    map[string]float64
}

// Apogee returns the highest sampled altitude.
func (r *Result) Apogee() float64 {
	max := 0.0
	for _, s := range r.Trajectory {
		if s.Pos.Z > max {
			max = s.Pos.Z
		}
	}
	return max
}

// Final returns the last sample.
func (r *Result) Final() dynamics.State {
	return r.Trajectory[len(r.Trajectory)-1]
}

// Runner ties mission, controller, observers and detectors into the
// simulation loop. A Runner owns its controller's mutable state, so
// concurrent runs need independently constructed Runners.
type Runner struct {
	mission    vehicle.Mission
	controller gnc.Controller
	observers  []Observer
	metrics    []Metric
	detectors  []Detector
}

// New returns a Runner for the mission. A nil controller defaults to
// the TVC controller.
func New(mission vehicle.Mission, controller gnc.Controller) *Runner {
	if controller == nil {
		controller = gnc.NewTVC()
	}
	return &Runner{mission: mission, controller: controller}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }
func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddDetector(d Detector) { r.detectors = append(r.detectors, d) }

// Run simulates the mission from ignition to the time limit or ground
// impact, whichever comes first. Impact wins: the final sample has its
// altitude clamped to exactly zero.
func (r *Runner) Run(cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.MaxTime <= 0 {
		return nil, fmt.Errorf("%w: max time %g", ErrInvalidConfig, cfg.MaxTime)
	}
	if err := r.mission.Validate(); err != nil {
		return nil, err
	}

	state := dynamics.State{
		Att:  dynamics.Identity,
		Mass: r.mission.TotalMass(),
	}

	capacity := min(int(cfg.MaxTime/cfg.Dt)+1, trajectoryCapHint)
	result := &Result{
		Trajectory: make([]dynamics.State, 0, capacity),
		Commands:   make([]dynamics.Command, 0, capacity),
		Metrics:    make(map[string]float64),
	}

	r.controller.Reset()
	for _, m := range r.metrics {
		m.Reset()
	}

	result.Trajectory = append(result.Trajectory, state)
	result.Commands = append(result.Commands, dynamics.Command{})

	launched := false

	for state.Time < cfg.MaxTime {
		cmd := r.controller.Control(state, r.mission, cfg.Dt)

		prev := state
		state = RK4Step(state, r.mission, cmd, cfg.Dt)
		r.checkStaging(&state, prev, result)

		if state.Pos.Z > launchAltitude && !launched {
			launched = true
			result.Events = append(result.Events, Event{
				Time: state.Time, Kind: EventLaunch, State: state,
			})
		}

		if launched && state.Pos.Z <= 0 {
			state.Pos.Z = 0
			r.record(result, state, cmd)
			result.Events = append(result.Events, Event{
				Time: state.Time, Kind: EventLanding, State: state,
			})
			break
		}

		r.record(result, state, cmd)
		r.runDetectors(result, prev, state)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (r *Runner) record(result *Result, state dynamics.State, cmd dynamics.Command) {
	result.Trajectory = append(result.Trajectory, state)
	result.Commands = append(result.Commands, cmd)
	for _, o := range r.observers {
		o.OnStep(state, cmd)
	}
	for _, m := range r.metrics {
		m.Observe(state, cmd)
	}
}

func (r *Runner) runDetectors(result *Result, prev, current dynamics.State) {
	for _, d := range r.detectors {
		if ev, ok := d.Check(prev, current); ok {
			result.Events = append(result.Events, ev)
		}
	}
}

// checkStaging transitions to the next stage once the active stage's
// propellant is exhausted: the spent dry mass is jettisoned and the
// index incremented. The transition is one-way; the last stage coasts
// on exhaustion instead.
func (r *Runner) checkStaging(state *dynamics.State, prev dynamics.State, result *Result) {
	stage, ok := r.mission.ActiveStage(state.StageIdx)
	if !ok {
		return
	}
	remaining := state.Mass - stage.DryMass - r.mission.UpperStagesMass(state.StageIdx)
	if remaining > stagingCutoff {
		return
	}

	if state.StageIdx+1 < len(r.mission.Stages) {
		state.Mass -= stage.DryMass
		state.StageIdx++
		result.Events = append(result.Events,
			Event{
				Time:   state.Time,
				Kind:   EventBurnout,
				Detail: fmt.Sprintf("stage %d", prev.StageIdx),
				State:  *state,
			},
			Event{
				Time:   state.Time,
				Kind:   EventStaging,
				Detail: fmt.Sprintf("stage %d -> %d", prev.StageIdx, state.StageIdx),
				State:  *state,
			},
		)
	}
}
