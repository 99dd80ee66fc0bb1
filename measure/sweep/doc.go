// Package sweep synthesizes exponential sine sweeps and deconvolves their
// recorded responses (Farina method).
//
// An exponential sweep spends equal time per octave. After deconvolution
// with its amplitude-compensated, time-reversed inverse, the linear impulse
// response appears at the fundamental peak and the impulse response of each
// harmonic distortion order n appears earlier, at lag ℓ·ln(n), where
// ℓ = duration / ln(stop/start).
//
// # Usage
//
//	d := sweep.Descriptor{StartFreq: 20, StopFreq: 20000, Duration: 5, Fade: 0.01, SampleRate: 48000}
//	stim, _ := sweep.Generate(d)
//	// ... play stim.Signal through the system, record response ...
//	dec, _ := sweep.NewDeconvolver(d)
//	fundamental, _ := dec.Deconvolve(response)
//	n, _ := dec.MaxSafeHarmonic(0.1)
//	harmonics, _ := dec.Harmonics(0.1, n)
//	// harmonics[0] is the fundamental, harmonics[1] the 2nd harmonic, ...
package sweep
