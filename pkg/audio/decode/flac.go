// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes a complete FLAC stream to normalized samples
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

// FLACDecoder decodes FLAC audio.
type FLACDecoder struct{}

// NewFLAC creates a new FLAC decoder.
func NewFLAC(format audio.Format) (Decoder, error) {
	if format.Codec != "flac" {
		return nil, fmt.Errorf("%w: invalid codec for FLAC decoder: %s", ErrInvalidFormat, format.Codec)
	}
	return &FLACDecoder{}, nil
}

// Decode converts a complete FLAC stream to a buffer, frame by frame.
// The format parameters come from the stream header itself.
func (d *FLACDecoder) Decode(data []byte) (*audio.Buffer, error) {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("flac decode failed: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	scale := float32(int64(1) << (stream.Info.BitsPerSample - 1))

	chans := make([][]float32, channels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode failed: %w", err)
		}

		for ch := 0; ch < channels && ch < len(frame.Subframes); ch++ {
			for _, s := range frame.Subframes[ch].Samples {
				chans[ch] = append(chans[ch], float32(s)/scale)
			}
		}
	}

	if chans[0] == nil {
		return audio.NewBuffer(int(stream.Info.SampleRate), channels, 0), nil
	}

	return &audio.Buffer{
		SampleRate: int(stream.Info.SampleRate),
		Data:       chans,
	}, nil
}

// Close releases decoder resources.
func (d *FLACDecoder) Close() error {
	return nil
}
