// Package p56 implements the ITU-T P.56 speech voltmeter (method B).
//
// The active speech level is the energy of a signal divided by the time
// it is active. Activity is decided by comparing a two-pole envelope of the
// rectified signal against 15 thresholds spaced 6 dB apart, with 200 ms of
// hangover. The level is the point where the activity-corrected level sits
// 15.9 dB above its threshold, found by binary interpolation between the
// two thresholds that bracket it.
//
// Levels are in dBov: 0 dB is the power of a full-scale square wave.
package p56
