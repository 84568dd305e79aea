// ABOUTME: Base64 payload decoder
// ABOUTME: Reconstructs raw audio bytes from a synthesis service payload
package decode

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMalformedPayload reports base64 text that cannot be decoded.
var ErrMalformedPayload = errors.New("malformed base64 payload")

// Payload decodes a standard-alphabet base64 string into the raw bytes it
// encodes. An empty string yields an empty buffer. Characters outside the
// alphabet or illegal padding fail the whole call; there is no partial
// success.
func Payload(text string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return raw, nil
}
