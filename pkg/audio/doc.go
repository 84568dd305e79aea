// ABOUTME: Package documentation for the audio layer
// ABOUTME: Describes formats, buffers, and sample conversion helpers
// Package audio defines the shared audio types for the reader pipeline.
//
// A speech payload arrives as bytes in some encoded format (raw PCM16,
// MP3, Opus, FLAC); the decode package turns it into a Buffer of
// normalized float32 samples, one slice per channel, which the output
// package renders through the platform device.
package audio
