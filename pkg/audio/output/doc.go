// ABOUTME: Audio output package documentation
// ABOUTME: Describes device backends and the voice lifecycle
// Package output renders decoded audio through the platform device.
//
// The Device is a process-wide resource connected lazily on first use
// with a fixed output sample rate. Each playback allocates a fresh Voice,
// which plays its buffer once and is then discarded; a voice signals its
// natural end through the Done channel, which an explicit Stop never
// fires.
//
// Backends: oto (real hardware) and a headless stub for tests.
package output
