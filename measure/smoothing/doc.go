// Package smoothing implements fractional-octave smoothing of spectra onto a
// logarithmic frequency grid.
//
// Each grid point averages the bins within a window whose width is a fixed
// fraction of an octave, so the bandwidth grows with frequency. Magnitudes
// are averaged as linear values; use SmoothDB for curves held in decibels.
package smoothing
