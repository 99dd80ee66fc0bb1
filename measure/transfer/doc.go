// Package transfer estimates the transfer function between a measured
// response and the reference signal that excited it.
//
// The estimate is the regularized spectral division
//
//	H(k) = A(k)·conj(B(k)) / (|B(k)|² + ε)
//
// with A the response spectrum and B the reference spectrum, both
// zero-padded to the next power of two that holds their linear correlation.
// The impulse response is the inverse transform rotated by half a frame so
// negative delays stay visible.
//
// # Usage
//
//	spec, resp, err := transfer.Estimate(recorded, played)
//	if err != nil {
//	    return err
//	}
//	latency := resp.PeakAt // samples
package transfer
