// ABOUTME: Headless output device implementation
// ABOUTME: Produces no sound; used for tests and audio-less environments
package output

import (
	"sync"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
)

// Stub is a Device that renders nothing. Voices stay active until stopped
// or until EndAll fires their natural end, which lets tests drive the
// playback lifecycle deterministically.
type Stub struct {
	mu         sync.Mutex
	sampleRate int
	suspended  bool
	closed     bool
	voices     []*StubVoice
	created    int
}

// NewStub creates a headless device with the given fixed rate.
func NewStub(sampleRate int) *Stub {
	return &Stub{sampleRate: sampleRate}
}

// NewVoice allocates a silent voice bound to buf.
func (s *Stub) NewVoice(buf *audio.Buffer) (Voice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrDeviceUnavailable
	}

	v := &StubVoice{
		Buffer: buf,
		done:   make(chan struct{}),
	}
	s.voices = append(s.voices, v)
	s.created++
	return v, nil
}

// Resume clears the suspended state.
func (s *Stub) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrDeviceUnavailable
	}
	s.suspended = false
	return nil
}

// Suspend marks the device suspended, as a platform would.
func (s *Stub) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = true
}

// Suspended reports the suspended state.
func (s *Stub) Suspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspended
}

// SampleRate returns the fixed rate.
func (s *Stub) SampleRate() int {
	return s.sampleRate
}

// Close marks the device unusable.
func (s *Stub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Active returns the number of voices currently producing sound.
func (s *Stub) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, v := range s.voices {
		if v.playing() {
			n++
		}
	}
	return n
}

// Created returns the total number of voices ever allocated.
func (s *Stub) Created() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created
}

// Voices returns every voice allocated so far, in creation order.
func (s *Stub) Voices() []*StubVoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*StubVoice, len(s.voices))
	copy(out, s.voices)
	return out
}

// EndAll fires the natural end on every active voice.
func (s *Stub) EndAll() {
	s.mu.Lock()
	voices := make([]*StubVoice, len(s.voices))
	copy(voices, s.voices)
	s.mu.Unlock()

	for _, v := range voices {
		v.End()
	}
}

// StubVoice is a silent single-use voice.
type StubVoice struct {
	Buffer *audio.Buffer

	mu      sync.Mutex
	started bool
	stopped bool
	ended   bool
	plays   int
	stops   int
	done    chan struct{}
}

// Play marks the voice active.
func (v *StubVoice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.started = true
	v.plays++
}

// Stop marks the voice halted without firing Done.
func (v *StubVoice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped = true
	v.stops++
}

// Done reports the natural end.
func (v *StubVoice) Done() <-chan struct{} {
	return v.done
}

// End simulates the device reporting the buffer fully played. It is a
// no-op on a voice that was stopped or already ended.
func (v *StubVoice) End() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.started || v.stopped || v.ended {
		return
	}
	v.ended = true
	close(v.done)
}

// PlayCount returns how many times Play was called.
func (v *StubVoice) PlayCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.plays
}

// StopCount returns how many times Stop was called.
func (v *StubVoice) StopCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stops
}

func (v *StubVoice) playing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.started && !v.stopped && !v.ended
}
