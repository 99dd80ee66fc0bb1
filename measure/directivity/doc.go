// Package directivity measures a device at many angles against one
// reference signal and normalizes every angle to the on-axis response.
//
// Each capture is turned into a transfer function, smoothed, and divided by
// the smoothed on-axis (0°) magnitude at the normalization frequency, so the
// on-axis curve is exactly 0 dB there. Captures are independent and are
// estimated concurrently by a bounded worker pool.
package directivity
