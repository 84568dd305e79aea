// ABOUTME: PCM audio encoder
// ABOUTME: Interleaves channel buffers and packs 16-bit little-endian bytes
package encode

import (
	"encoding/binary"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

// Interleave flattens a buffer's per-channel samples into a single
// interleaved slice: frame 0 of every channel, then frame 1, and so on.
func Interleave(buf *audio.Buffer) []float32 {
	channels := buf.Channels()
	frames := buf.Frames()

	out := make([]float32, frames*channels)
	for ch := 0; ch < channels; ch++ {
		for f := 0; f < frames; f++ {
			out[f*channels+ch] = buf.Data[ch][f]
		}
	}
	return out
}

// PCM16Bytes converts interleaved normalized samples to signed 16-bit
// little-endian PCM bytes, clamping out-of-range values.
func PCM16Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(audio.SampleToInt16(s)))
	}
	return out
}
