// ABOUTME: Tests for the MP3 decoder
// ABOUTME: Tests codec validation and malformed payload rejection
package decode

import (
	"testing"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

func TestNewMP3_InvalidCodec(t *testing.T) {
	_, err := NewMP3(audio.Format{Codec: "pcm"})
	if err == nil {
		t.Fatal("expected error for invalid codec")
	}
}

func TestMP3DecodeMalformedData(t *testing.T) {
	dec, err := NewMP3(audio.Format{Codec: "mp3"})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if _, err := dec.Decode([]byte{0x01, 0x02, 0x03, 0x04}); err == nil {
		t.Fatal("expected error for malformed MP3 data")
	}
}
