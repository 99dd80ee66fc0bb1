// Package conv provides linear convolution and cross-correlation.
//
// Short kernels are convolved directly in the time domain; longer ones go
// through a zero-padded FFT of the next power of two. Results can be trimmed
// to the full, same or valid region.
//
// # Usage
//
//	full, err := conv.Convolve(signal, kernel)
//	same, err := conv.ConvolveMode(response, inverseFilter, conv.ModeSame)
//	lag, err := conv.EstimateLag(capture, reference)
package conv
