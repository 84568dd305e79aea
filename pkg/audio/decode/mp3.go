// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes a complete MP3 payload to normalized samples
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

// MP3Decoder decodes MP3 audio.
type MP3Decoder struct{}

// NewMP3 creates a new MP3 decoder.
func NewMP3(format audio.Format) (Decoder, error) {
	if format.Codec != "mp3" {
		return nil, fmt.Errorf("%w: invalid codec for MP3 decoder: %s", ErrInvalidFormat, format.Codec)
	}
	return &MP3Decoder{}, nil
}

// Decode converts a complete MP3 payload to a buffer. go-mp3 always
// outputs 16-bit stereo at the stream's native rate.
func (d *MP3Decoder) Decode(data []byte) (*audio.Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3 decode failed: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode failed: %w", err)
	}

	inner, err := NewPCM(audio.Format{
		Codec:      "pcm",
		SampleRate: dec.SampleRate(),
		Channels:   2,
		BitDepth:   16,
	})
	if err != nil {
		return nil, err
	}
	defer inner.Close()

	return inner.Decode(pcm)
}

// Close releases decoder resources.
func (d *MP3Decoder) Close() error {
	return nil
}
