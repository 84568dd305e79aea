// ABOUTME: Tests for the base64 payload decoder
// ABOUTME: Tests reconstruction, round trips, and malformed input
package decode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestPayloadDecodesKnownText(t *testing.T) {
	raw, err := Payload("QQ==")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(raw) != 1 || raw[0] != 0x41 {
		t.Errorf("expected [0x41], got %v", raw)
	}
}

func TestPayloadEmptyString(t *testing.T) {
	raw, err := Payload("")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(raw) != 0 {
		t.Errorf("expected empty buffer, got %d bytes", len(raw))
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0x00, 0x80, 0xFF, 0x7F},
		{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01},
	}

	for _, in := range inputs {
		raw, err := Payload(base64.StdEncoding.EncodeToString(in))
		if err != nil {
			t.Fatalf("round trip failed for %v: %v", in, err)
		}
		if !bytes.Equal(raw, in) {
			t.Errorf("round trip mismatch: sent %v, got %v", in, raw)
		}
	}
}

func TestPayloadMalformedInput(t *testing.T) {
	inputs := []string{
		"!!!",
		"QQ=",     // truncated padding
		"Q===",    // illegal padding position
		"QUJD QQ", // embedded whitespace is not tolerated
	}

	for _, in := range inputs {
		_, err := Payload(in)
		if err == nil {
			t.Errorf("expected error for %q, got nil", in)
			continue
		}
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("expected ErrMalformedPayload for %q, got %v", in, err)
		}
	}
}
