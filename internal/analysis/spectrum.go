package analysis

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/rocketsim/internal/dynamics"
)

// PowerSpectrum returns the magnitude spectrum of data. The signal is
// detrended by its mean and zero-padded to the next power of two, so any
// sample count is accepted. Bin i corresponds to frequency i/(n*dt) where
// n is the padded length, returned by the second value.
func PowerSpectrum(data []float64) ([]float64, int) {
	if len(data) == 0 {
		return nil, 0
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps, n
}

// DominantFrequency returns the strongest non-DC component of the signal
// in Hz, along with its magnitude. dt is the sample interval.
func DominantFrequency(data []float64, dt float64) (freq, power float64) {
	ps, n := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}

	maxIdx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	return float64(maxIdx) / (float64(n) * dt), ps[maxIdx]
}

// PitchSpectrum extracts the pitch history of a flight and returns its
// magnitude spectrum together with the dominant oscillation frequency.
// The sample interval is taken from the trajectory itself.
func PitchSpectrum(trajectory []dynamics.State) (ps []float64, freq float64) {
	if len(trajectory) < 2 {
		return nil, 0
	}

	pitch := make([]float64, len(trajectory))
	for i, s := range trajectory {
		pitch[i] = s.Pitch()
	}

	dt := (trajectory[len(trajectory)-1].Time - trajectory[0].Time) / float64(len(trajectory)-1)
	ps, _ = PowerSpectrum(pitch)
	freq, _ = DominantFrequency(pitch, dt)
	return ps, freq
}

// radix-2 Cooley-Tukey. len(data) must be a power of two.
func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}
