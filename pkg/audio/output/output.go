// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for output devices and one-shot voices
package output

import (
	"errors"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

// ErrDeviceUnavailable reports that the platform output device could not
// be connected or has been closed.
var ErrDeviceUnavailable = errors.New("audio output device unavailable")

// Device represents the process-wide audio output connection. It is
// created lazily on first use with a fixed output sample rate and reused
// for the life of the process. Re-creating it while a voice is active is
// unsafe.
type Device interface {
	// NewVoice allocates a single-use playback instance for buf. A voice
	// plays once from offset 0 and must be discarded after Stop or after
	// its Done channel fires.
	NewVoice(buf *audio.Buffer) (Voice, error)

	// Resume wakes the device if the platform has suspended it.
	Resume() error

	// Suspended reports whether the platform has suspended the device.
	Suspended() bool

	// SampleRate returns the device's fixed output rate, or 0 if the
	// device has not been connected yet.
	SampleRate() int

	// Close releases the device connection.
	Close() error
}

// Voice is one sound-producing instance bound to a buffer. Play and Stop
// are each valid at most once.
type Voice interface {
	// Play begins sound production at offset 0.
	Play()

	// Stop halts sound production immediately. It does not fire Done.
	Stop()

	// Done is closed when the buffer has been fully played (natural end).
	Done() <-chan struct{}
}
