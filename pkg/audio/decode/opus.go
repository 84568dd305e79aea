// ABOUTME: Opus audio decoder
// ABOUTME: Decodes Opus packets to normalized samples
package decode

import (
	"fmt"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// OpusDecoder decodes Opus audio packets.
type OpusDecoder struct {
	decoder *opus.Decoder
	format  audio.Format
}

// NewOpus creates a new Opus decoder.
func NewOpus(format audio.Format) (Decoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("%w: invalid codec for Opus decoder: %s", ErrInvalidFormat, format.Codec)
	}

	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return &OpusDecoder{
		decoder: dec,
		format:  format,
	}, nil
}

// Decode converts one Opus packet to a buffer.
func (d *OpusDecoder) Decode(data []byte) (*audio.Buffer, error) {
	// Max Opus frame size at 48kHz
	pcm16 := make([]int16, 5760*d.format.Channels)

	n, err := d.decoder.Decode(data, pcm16)
	if err != nil {
		return nil, fmt.Errorf("opus decode failed: %w", err)
	}

	buf := audio.NewBuffer(d.format.SampleRate, d.format.Channels, n)
	for f := 0; f < n; f++ {
		for ch := 0; ch < d.format.Channels; ch++ {
			buf.Data[ch][f] = audio.SampleFromInt16(pcm16[f*d.format.Channels+ch])
		}
	}

	return buf, nil
}

// Close releases decoder resources.
func (d *OpusDecoder) Close() error {
	return nil
}
