// Package biquad implements second-order IIR sections in Direct Form II
// Transposed.
//
// [Step] advances a caller-owned delay line. [Chain] owns one delay line per
// section and runs them in series. Coefficient design lives in
// dsp/filter/weighting.
package biquad
