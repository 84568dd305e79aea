// ABOUTME: PCM audio decoder
// ABOUTME: Converts signed 16-bit little-endian PCM to normalized samples
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/output"
)

// PCMDecoder decodes raw PCM16 audio. The sample rate and channel count
// are not carried in the byte stream; they must match whatever convention
// the producer used, or the result is silently garbled.
type PCMDecoder struct {
	sampleRate int
	channels   int
}

// NewPCM creates a new PCM decoder.
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("%w: invalid codec for PCM decoder: %s", ErrInvalidFormat, format.Codec)
	}
	if format.BitDepth != 0 && format.BitDepth != 16 {
		return nil, fmt.Errorf("%w: unsupported bit depth: %d", ErrInvalidFormat, format.BitDepth)
	}
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidFormat, format.SampleRate)
	}
	if format.Channels <= 0 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidFormat, format.Channels)
	}

	return &PCMDecoder{
		sampleRate: format.SampleRate,
		channels:   format.Channels,
	}, nil
}

// Decode converts interleaved PCM16 bytes into per-channel normalized
// samples. Each int16 is divided by 32768, so -32768 maps to -1.0 and
// 32767 to just under 1.0. A trailing incomplete frame is dropped, never
// an error; this matches how streaming decoders discard undersized tails.
func (d *PCMDecoder) Decode(data []byte) (*audio.Buffer, error) {
	frames := len(data) / (2 * d.channels)

	buf := audio.NewBuffer(d.sampleRate, d.channels, frames)
	for f := 0; f < frames; f++ {
		for ch := 0; ch < d.channels; ch++ {
			s := int16(binary.LittleEndian.Uint16(data[(f*d.channels+ch)*2:]))
			buf.Data[ch][f] = audio.SampleFromInt16(s)
		}
	}

	return buf, nil
}

// Close releases resources.
func (d *PCMDecoder) Close() error {
	return nil
}

// AudioData converts raw PCM16 bytes into a buffer for the device that
// will play it. The device is consulted only so the buffer matches what
// it expects; it is never mutated.
func AudioData(raw []byte, dev output.Device, sampleRate, channels int) (*audio.Buffer, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w", output.ErrDeviceUnavailable)
	}

	dec, err := NewPCM(audio.Format{
		Codec:      "pcm",
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   16,
	})
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.Decode(raw)
}
