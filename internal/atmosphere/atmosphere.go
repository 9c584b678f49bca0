// Package atmosphere implements the ISA 1976 standard atmosphere from
// sea level to 86 km. It is a pure function of geometric altitude and
// carries no state.
package atmosphere

import (
	"math"

	"github.com/san-kum/rocketsim/internal/gravity"
)

const (
	rAir  = 287.05287 // specific gas constant for dry air, J/(kg*K)
	gamma = 1.4       // ratio of specific heats

	t0 = 288.15   // sea-level temperature, K
	p0 = 101325.0 // sea-level pressure, Pa
)

// Atmo holds atmospheric properties at a given altitude.
type Atmo struct {
	Density     float64 // kg/m^3
	Pressure    float64 // Pa
	Temperature float64 // K
	SoundSpeed  float64 // m/s
}

// ISA evaluates the standard atmosphere at a geometric altitude.
// Negative altitudes clamp to sea level; above 86 km the model returns
// a near-vacuum exponential tail.
func ISA(altitude float64) Atmo {
	h := math.Max(altitude, 0)

	var temperature, pressure float64
	switch {
	case h < 11000: // troposphere, lapse -6.5 K/km
		temperature, pressure = gradientLayer(h, 0, t0, -0.0065, p0)
	case h < 20000: // tropopause, isothermal
		temperature, pressure = isothermalLayer(h, 11000, 216.65, 22632.1)
	case h < 32000: // stratosphere I, lapse +1.0 K/km
		temperature, pressure = gradientLayer(h, 20000, 216.65, 0.001, 5474.89)
	case h < 47000: // stratosphere II, lapse +2.8 K/km
		temperature, pressure = gradientLayer(h, 32000, 228.65, 0.0028, 868.019)
	case h < 51000: // mesosphere I, isothermal
		temperature, pressure = isothermalLayer(h, 47000, 270.65, 110.906)
	case h < 71000: // mesosphere II, lapse -2.8 K/km
		temperature, pressure = gradientLayer(h, 51000, 270.65, -0.0028, 66.9389)
	case h < 86000: // mesosphere III, lapse -2.0 K/km
		temperature, pressure = gradientLayer(h, 71000, 214.65, -0.002, 3.95642)
	default: // above 86 km: exponential decay approximation
		temperature = 186.87
		pressure = math.Max(0.3734*math.Exp(-0.00015*(h-86000)), 0)
	}

	density := 0.0
	if temperature > 0 {
		density = pressure / (rAir * temperature)
	}

	return Atmo{
		Density:     density,
		Pressure:    pressure,
		Temperature: temperature,
		SoundSpeed:  math.Sqrt(gamma * rAir * temperature),
	}
}

// gradientLayer: T = Tbase + lapse*(h - hbase), barometric pressure.
func gradientLayer(h, hBase, tBase, lapse, pBase float64) (float64, float64) {
	t := tBase + lapse*(h-hBase)
	p := pBase * math.Pow(t/tBase, -gravity.G0/(lapse*rAir))
	return t, p
}

// isothermalLayer: constant T, exponential pressure decay.
func isothermalLayer(h, hBase, t, pBase float64) (float64, float64) {
	p := pBase * math.Exp((-gravity.G0/(rAir*t))*(h-hBase))
	return t, p
}
