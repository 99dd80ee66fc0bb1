// Package spectrum provides the spectrum result type and the helpers that
// operate on it.
//
// The package does not compute transforms itself. It turns complex bins into
// magnitude and phase, unwraps phase, interpolates between frequency grids,
// and differentiates phase into group delay.
package spectrum
