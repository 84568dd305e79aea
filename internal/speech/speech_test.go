// ABOUTME: Tests for the speech result type
// ABOUTME: Tests MIME type to format mapping
package speech

import "testing"

func TestResultFormatDefaults(t *testing.T) {
	r := &Result{Payload: "QQ==", MimeType: ""}

	format := r.Format()
	if format.Codec != "pcm" {
		t.Errorf("expected pcm, got %s", format.Codec)
	}
	if format.SampleRate != 24000 {
		t.Errorf("expected 24000, got %d", format.SampleRate)
	}
	if format.Channels != 1 {
		t.Errorf("expected 1 channel, got %d", format.Channels)
	}
}

func TestResultFormatPCMWithRate(t *testing.T) {
	r := &Result{MimeType: "audio/L16;codec=pcm;rate=16000"}

	format := r.Format()
	if format.Codec != "pcm" {
		t.Errorf("expected pcm, got %s", format.Codec)
	}
	if format.SampleRate != 16000 {
		t.Errorf("expected 16000, got %d", format.SampleRate)
	}
}

func TestResultFormatCodecs(t *testing.T) {
	tests := []struct {
		mime  string
		codec string
	}{
		{"audio/L16;rate=24000", "pcm"},
		{"audio/mpeg", "mp3"},
		{"audio/mp3", "mp3"},
		{"audio/ogg", "opus"},
		{"audio/opus", "opus"},
		{"audio/flac", "flac"},
		{"audio/x-flac", "flac"},
	}

	for _, tt := range tests {
		r := &Result{MimeType: tt.mime}
		if got := r.Format().Codec; got != tt.codec {
			t.Errorf("%s: expected codec %s, got %s", tt.mime, tt.codec, got)
		}
	}
}

func TestResultFormatChannels(t *testing.T) {
	r := &Result{MimeType: "audio/L16;rate=24000;channels=2"}

	if got := r.Format().Channels; got != 2 {
		t.Errorf("expected 2 channels, got %d", got)
	}
}

func TestResultFormatUnparseableMime(t *testing.T) {
	r := &Result{MimeType: ";;;"}

	format := r.Format()
	if format.Codec != "pcm" || format.SampleRate != 24000 {
		t.Errorf("expected defaults for unparseable mime, got %+v", format)
	}
}
