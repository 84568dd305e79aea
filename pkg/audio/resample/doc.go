// ABOUTME: Resample package documentation
// ABOUTME: Describes the linear interpolation resampler
// Package resample converts interleaved audio between sample rates using
// linear interpolation. Quality is adequate for speech; the output device
// uses it when a payload's rate differs from the device's fixed rate.
package resample
