// Package measure is the functional surface of the acoustic measurement
// engine. Each function wraps one of the measure/* packages with its
// default configuration; use those packages directly for options and
// streaming state.
//
// # Usage
//
//	stim, _ := measure.SynthesizeSweep(desc)
//	// play stim.Signal, record the response ...
//	dc, fundamental, _ := measure.DeconvolveFarina(recorded, desc)
//	curve, _ := measure.HarmonicDistortion(dc, 0.05, 5, 1.0/6)
package measure
