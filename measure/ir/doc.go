// Package ir holds measured impulse responses and the operations on them.
//
// A [Response] is what the transfer-function estimator and the Farina
// deconvolver return: the time-domain IR, an optional peak-recentred complex
// form for re-transforming, a time axis that is zero at the detected peak,
// and the peak position.
//
// [Spectrum] turns a response into a one-sided spectrum with phase pinned at
// a reference frequency. [Extract] cuts a windowed segment out of a response,
// which is how harmonic IRs are separated. [Analyze] derives ISO 3382 decay
// metrics (RT60, EDT, clarity, definition, centre time) from the IR.
//
//	spec, err := ir.Spectrum(resp, 1000)
//	metrics, err := ir.Analyze(resp)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", metrics.RT60, metrics.C80)
package ir
