// Package weighting designs frequency weighting filters.
//
// K-weighting per ITU-R BS.1770 is the input stage of loudness measurement.
// It is a cascade of two second-order sections:
//
//   - a high shelf of about +4 dB above 2 kHz modelling the acoustic effect
//     of the head
//   - the revised low-frequency B-curve (RLB) high-pass at about 38 Hz
//
// Coefficients are derived from the analog prototype for any sample rate, so
// they are not limited to the tabulated 48 kHz values. [New] wraps them in a
// [biquad.Chain]; [KWeighting] returns the raw sections.
package weighting
