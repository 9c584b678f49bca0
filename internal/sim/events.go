package sim

import (
	"fmt"

	"github.com/san-kum/rocketsim/internal/dynamics"
)

// EventKind labels a discrete flight event.
type EventKind string

const (
	EventLaunch  EventKind = "launch"
	EventBurnout EventKind = "burnout"
	EventStaging EventKind = "staging"
	EventApogee  EventKind = "apogee"
	EventLanding EventKind = "landing"
	EventCustom  EventKind = "custom"
)

// Event is a discrete occurrence detected during a run.
type Event struct {
	Time   float64
	Kind   EventKind
	Detail string
	State  dynamics.State
}

func (e Event) String() string {
	if e.Detail != "" {
		return fmt.Sprintf("t=%.2fs %s (%s)", e.Time, e.Kind, e.Detail)
	}
	return fmt.Sprintf("t=%.2fs %s", e.Time, e.Kind)
}

// Detector inspects consecutive states and reports an event when its
// condition fires. Detectors may keep state (one-shot latches).
type Detector interface {
	Check(prev, current dynamics.State) (Event, bool)
}

// ApogeeDetector fires when vertical velocity changes sign from
// ascending to descending above 100 m altitude.
type ApogeeDetector struct{}

func (ApogeeDetector) Check(prev, current dynamics.State) (Event, bool) {
	if prev.Vel.Z > 0 && current.Vel.Z <= 0 && current.Pos.Z > 100 {
		return Event{Time: current.Time, Kind: EventApogee, State: current}, true
	}
	return Event{}, false
}

// AltitudeDetector fires once when altitude crosses a threshold in the
// configured direction.
type AltitudeDetector struct {
	Altitude  float64
	Ascending bool

	fired bool
}

func (d *AltitudeDetector) Check(prev, current dynamics.State) (Event, bool) {
	if d.fired {
		return Event{}, false
	}
	var crossed bool
	if d.Ascending {
		crossed = prev.Pos.Z < d.Altitude && current.Pos.Z >= d.Altitude
	} else {
		crossed = prev.Pos.Z > d.Altitude && current.Pos.Z <= d.Altitude
	}
	if !crossed {
		return Event{}, false
	}
	d.fired = true
	dir := "descending"
	if d.Ascending {
		dir = "ascending"
	}
	return Event{
		Time:   current.Time,
		Kind:   EventCustom,
		Detail: fmt.Sprintf("altitude %.0fm (%s)", d.Altitude, dir),
		State:  current,
	}, true
}
