package sim

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/dynamics"
)

func flightState(alt, vz float64) dynamics.State {
	return dynamics.State{
		Pos:  r3.Vec{Z: alt},
		Vel:  r3.Vec{Z: vz},
		Att:  dynamics.Identity,
		Mass: 100,
	}
}

func TestApogeeDetected(t *testing.T) {
	var det ApogeeDetector
	ev, ok := det.Check(flightState(5000, 10), flightState(5005, -1))
	if !ok {
		t.Fatal("apogee should be detected on vz sign change")
	}
	if ev.Kind != EventApogee {
		t.Errorf("kind: got %s", ev.Kind)
	}
}

func TestApogeeIgnoredNearGround(t *testing.T) {
	var det ApogeeDetector
	if _, ok := det.Check(flightState(50, 1), flightState(50, -1)); ok {
		t.Error("vz wobble below 100 m should not count as apogee")
	}
}

func TestAltitudeDetectorAscendingFiresOnce(t *testing.T) {
	det := &AltitudeDetector{Altitude: 1000, Ascending: true}
	prev, curr := flightState(900, 100), flightState(1050, 100)
	ev, ok := det.Check(prev, curr)
	if !ok {
		t.Fatal("ascending crossing should fire")
	}
	if !strings.Contains(ev.Detail, "1000m") {
		t.Errorf("detail should name the threshold, got %q", ev.Detail)
	}
	if _, ok := det.Check(prev, curr); ok {
		t.Error("detector should latch after the first crossing")
	}
}

func TestAltitudeDetectorDescending(t *testing.T) {
	det := &AltitudeDetector{Altitude: 500, Ascending: false}
	if _, ok := det.Check(flightState(400, 100), flightState(600, 100)); ok {
		t.Error("ascending crossing should not fire a descending detector")
	}
	if _, ok := det.Check(flightState(600, -100), flightState(450, -100)); !ok {
		t.Error("descending crossing should fire")
	}
}

func TestEventString(t *testing.T) {
	ev := Event{Time: 12.5, Kind: EventStaging, Detail: "stage 0 -> 1"}
	s := ev.String()
	if !strings.Contains(s, "staging") || !strings.Contains(s, "stage 0 -> 1") {
		t.Errorf("unexpected event string %q", s)
	}
}
