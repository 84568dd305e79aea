// ABOUTME: Decoder interface definition and codec factory
// ABOUTME: Dispatches speech payload bytes to the matching decoder
package decode

import (
	"errors"
	"fmt"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

// ErrInvalidFormat reports unusable format parameters.
var ErrInvalidFormat = errors.New("invalid audio format")

// Decoder converts encoded audio bytes to a normalized sample buffer.
type Decoder interface {
	// Decode converts a complete payload to a buffer
	Decode(data []byte) (*audio.Buffer, error)

	// Close releases decoder resources
	Close() error
}

// New creates a decoder for the specified format.
func New(format audio.Format) (Decoder, error) {
	switch format.Codec {
	case "pcm":
		return NewPCM(format)
	case "mp3":
		return NewMP3(format)
	case "opus":
		return NewOpus(format)
	case "flac":
		return NewFLAC(format)
	default:
		return nil, fmt.Errorf("%w: unsupported codec %q", ErrInvalidFormat, format.Codec)
	}
}
