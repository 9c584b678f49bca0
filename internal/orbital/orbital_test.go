package orbital

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/rocketsim/internal/gravity"
)

func TestCircularLEORoundTrip(t *testing.T) {
	orbit := Circular(400000, 51.6*math.Pi/180)
	pos, vel := orbit.StateVector()

	recovered := FromStateVector(pos, vel)
	if math.Abs(recovered.SMA-orbit.SMA) > 1 {
		t.Errorf("sma: got %g, want %g", recovered.SMA, orbit.SMA)
	}
	if recovered.Ecc >= 1e-6 {
		t.Errorf("should recover near-circular, ecc %g", recovered.Ecc)
	}
	if math.Abs(recovered.Inc-orbit.Inc) > 1e-6 {
		t.Errorf("inclination: got %g, want %g", recovered.Inc, orbit.Inc)
	}
}

func TestCircularOrbitSpeed(t *testing.T) {
	alt := 400000.0
	orbit := Circular(alt, 0)
	_, vel := orbit.StateVector()
	want := math.Sqrt(gravity.MuEarth / (gravity.REarthECI + alt))
	if math.Abs(r3.Norm(vel)-want) > 1 {
		t.Errorf("circular speed: got %g, want %g", r3.Norm(vel), want)
	}
	if math.Abs(CircularVelocity(gravity.REarthECI+alt)-want) > 1e-9 {
		t.Error("CircularVelocity should match the vis-viva value")
	}
}

func TestLEOPeriod(t *testing.T) {
	period := Circular(400000, 0).Period()
	// ISS-like orbit, ~92 minutes.
	if period <= 5400 || period >= 5700 {
		t.Errorf("LEO period should be ~92 min, got %.0f s", period)
	}
}

func TestCircularOrbitClosesAfterOnePeriod(t *testing.T) {
	r := gravity.REarthECI + 400000
	v := math.Sqrt(gravity.MuEarth / r)
	initial := State{
		Pos: r3.Vec{X: r},
		Vel: r3.Vec{Y: v},
	}

	period := 2 * math.Pi * math.Sqrt(r*r*r/gravity.MuEarth)
	traj := Propagate(initial, 1.0, period, false)
	last := traj[len(traj)-1]

	posError := r3.Norm(r3.Sub(last.Pos, initial.Pos))
	circumference := 2 * math.Pi * r
	relative := posError / circumference
	if relative >= 2e-4 {
		t.Errorf("relative position error after one orbit: %.2e (%.0f m)", relative, posError)
	}
}

func TestJ2CausesDrift(t *testing.T) {
	r := gravity.REarthECI + 400000
	v := math.Sqrt(gravity.MuEarth / r)
	inc := 51.6 * math.Pi / 180
	initial := State{
		Pos: r3.Vec{X: r},
		Vel: r3.Vec{Y: v * math.Cos(inc), Z: v * math.Sin(inc)},
	}

	period := 2 * math.Pi * math.Sqrt(r*r*r/gravity.MuEarth)
	noJ2 := Propagate(initial, 1.0, period, false)
	withJ2 := Propagate(initial, 1.0, period, true)

	diff := r3.Norm(r3.Sub(withJ2[len(withJ2)-1].Pos, noJ2[len(noJ2)-1].Pos))
	if diff <= 10 {
		t.Errorf("J2 should cause measurable drift after one orbit, got %.1f m", diff)
	}
}

func TestOrbitalStateAccessors(t *testing.T) {
	s := State{Pos: r3.Vec{X: gravity.REarthECI + 500000}, Vel: r3.Vec{Y: 7600}}
	if math.Abs(s.Altitude()-500000) > 1e-6 {
		t.Errorf("altitude: got %g", s.Altitude())
	}
	if s.Speed() != 7600 {
		t.Errorf("speed: got %g", s.Speed())
	}
}

func TestHohmannLEOToGEO(t *testing.T) {
	rLEO := gravity.REarthECI + 200000
	rGEO := 42164000.0
	h := Hohmann(rLEO, rGEO)

	// Known values: ~2.46 + ~1.48 km/s.
	if h.TotalDV <= 3800 || h.TotalDV >= 4100 {
		t.Errorf("LEO->GEO delta-v should be ~3.94 km/s, got %.0f m/s", h.TotalDV)
	}
	if h.TransferTime <= 18000 || h.TransferTime >= 20000 {
		t.Errorf("transfer time should be ~5.3 h, got %.0f s", h.TransferTime)
	}
}

func TestHohmannSameOrbitIsFree(t *testing.T) {
	r := gravity.REarthECI + 400000
	if h := Hohmann(r, r); h.TotalDV >= 1e-6 {
		t.Errorf("same-orbit transfer should need no delta-v, got %g", h.TotalDV)
	}
}
