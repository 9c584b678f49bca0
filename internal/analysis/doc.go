// Package analysis provides frequency analysis of flight data.
//
// The package characterizes the attitude control loop from a flown
// trajectory:
//
//   - [PowerSpectrum]: magnitude spectrum of a sampled signal
//   - [DominantFrequency]: strongest non-DC component, in Hz
//   - [PitchSpectrum]: spectrum of the pitch history of a flight
//
// A sharp peak in the pitch spectrum indicates a poorly damped control
// loop ringing at that frequency.
package analysis
