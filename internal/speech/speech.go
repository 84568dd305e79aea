// ABOUTME: Speech synthesis collaborator contract
// ABOUTME: Defines the Synthesizer interface and the payload result type
package speech

import (
	"context"
	"errors"
	"mime"
	"strconv"
	"strings"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

// ErrNoAudio reports that the service produced no audio for the request.
// It is a distinct, user-visible failure; the payload never reaches the
// decoder.
var ErrNoAudio = errors.New("synthesis produced no audio")

// Reference deployment format: raw PCM16 mono at 24kHz.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
)

// Synthesizer converts text into a speech payload.
type Synthesizer interface {
	// Synthesize returns the synthesized audio for text
	Synthesize(ctx context.Context, text string) (*Result, error)

	// Close releases synthesizer resources
	Close() error
}

// Result is a synthesis payload exactly as the service returned it: the
// audio bytes base64-encoded, plus the MIME type the service declared.
type Result struct {
	Payload  string
	MimeType string
}

// Format maps the declared MIME type to decode parameters. The payload
// itself carries no format information, so this mapping is the only
// protection against silently garbled output.
func (r *Result) Format() audio.Format {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		BitDepth:   16,
	}

	mediaType, params, err := mime.ParseMediaType(r.MimeType)
	if err != nil {
		return format
	}

	switch strings.ToLower(mediaType) {
	case "audio/l16", "audio/pcm":
		format.Codec = "pcm"
	case "audio/mpeg", "audio/mp3":
		format.Codec = "mp3"
	case "audio/ogg", "audio/opus":
		format.Codec = "opus"
	case "audio/flac", "audio/x-flac":
		format.Codec = "flac"
	}

	if rate, err := strconv.Atoi(params["rate"]); err == nil && rate > 0 {
		format.SampleRate = rate
	}
	if ch, err := strconv.Atoi(params["channels"]); err == nil && ch > 0 {
		format.Channels = ch
	}

	return format
}
