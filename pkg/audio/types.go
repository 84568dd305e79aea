// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and decoded sample buffers
package audio

import "time"

// Format describes how a raw speech payload is to be interpreted.
// The parameters are caller-supplied convention: nothing in the payload
// itself carries them, and a mismatch garbles the sound silently.
type Format struct {
	Codec      string // "pcm", "mp3", "opus", "flac"
	SampleRate int
	Channels   int
	BitDepth   int
}

// Buffer holds decoded audio as normalized float32 samples in [-1.0, 1.0),
// one slice per channel. All channel slices have equal length.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a buffer with the given number of channels and
// frames per channel.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
	}
	return &Buffer{SampleRate: sampleRate, Data: data}
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return len(b.Data)
}

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// SampleFromInt16 normalizes a signed 16-bit sample to [-1.0, 1.0).
// -32768 maps to -1.0 and 32767 to just under 1.0.
func SampleFromInt16(s int16) float32 {
	return float32(s) / 32768.0
}

// SampleToInt16 converts a normalized sample back to 16-bit, clamping
// anything outside [-1.0, 1.0).
func SampleToInt16(v float32) int16 {
	scaled := v * 32768.0
	if scaled > 32767.0 {
		return 32767
	}
	if scaled < -32768.0 {
		return -32768
	}
	return int16(scaled)
}
