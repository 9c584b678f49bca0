package atmosphere

import (
	"math"
	"testing"
)

func TestSeaLevelStandardValues(t *testing.T) {
	a := ISA(0)
	if math.Abs(a.Temperature-288.15) > 0.01 {
		t.Errorf("sea level temperature: got %f", a.Temperature)
	}
	if math.Abs(a.Pressure-101325) > 1 {
		t.Errorf("sea level pressure: got %f", a.Pressure)
	}
	if math.Abs(a.Density-1.225) > 0.001 {
		t.Errorf("sea level density: got %f", a.Density)
	}
	if math.Abs(a.SoundSpeed-340.29) > 0.1 {
		t.Errorf("sea level sound speed: got %f", a.SoundSpeed)
	}
}

func TestTropopause(t *testing.T) {
	a := ISA(11000)
	if math.Abs(a.Temperature-216.65) > 0.5 {
		t.Errorf("tropopause temperature: got %f", a.Temperature)
	}
	if math.Abs(a.Pressure-22632) > 100 {
		t.Errorf("tropopause pressure: got %f", a.Pressure)
	}
}

func TestDensityMonotonicallyDecreases(t *testing.T) {
	alts := []float64{0, 5000, 10000, 25000, 50000, 80000}
	prev := math.Inf(1)
	for _, h := range alts {
		rho := ISA(h).Density
		if rho >= prev {
			t.Errorf("density at %.0f m (%g) should be below density at lower altitude (%g)", h, rho, prev)
		}
		if rho <= 0 {
			t.Errorf("density at %.0f m should remain positive, got %g", h, rho)
		}
		prev = rho
	}
}

func TestNegativeAltitudeClampsToSeaLevel(t *testing.T) {
	a := ISA(-500)
	if math.Abs(a.Temperature-288.15) > 0.01 {
		t.Errorf("negative altitude should clamp to sea level, got T=%f", a.Temperature)
	}
}

func TestNearVacuumAbove86km(t *testing.T) {
	a := ISA(100000)
	if a.Density >= 1e-5 {
		t.Errorf("density above 86 km should be near zero, got %g", a.Density)
	}
	if a.Pressure >= 1 {
		t.Errorf("pressure above 86 km should be near zero, got %g", a.Pressure)
	}
}
