// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides the Decoder interface and PCM, MP3, Opus, FLAC implementations
// Package decode turns encoded speech payloads into normalized sample
// buffers.
//
// Payload reconstructs raw bytes from the base64 text a synthesis service
// returns; AudioData is the fast path for the raw PCM16 those services
// usually produce. New dispatches on codec for everything else.
//
// Example:
//
//	raw, err := decode.Payload(resp.Data)
//	buf, err := decode.AudioData(raw, dev, 24000, 1)
package decode
