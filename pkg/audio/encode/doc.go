// ABOUTME: Audio encoding package documentation
// ABOUTME: Describes sample interleaving and PCM16 packing
// Package encode turns normalized sample buffers back into interleaved
// PCM16 bytes for the output device and for WAV export.
package encode
