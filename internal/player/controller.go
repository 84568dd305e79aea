// ABOUTME: Playback controller state machine
// ABOUTME: Enforces the single-active-voice policy over the output device
package player

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/output"
)

// ErrNoBuffer reports a start request with no audio loaded.
var ErrNoBuffer = errors.New("no audio buffer loaded")

// State is the controller's playback state.
type State int

const (
	Idle State = iota
	Playing
)

// String returns the state name.
func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

// Controller drives playback of one loaded buffer against the output
// device. At most one voice is active at a time; starting while playing
// terminates the previous voice first. Voices are single-use, so the
// controller never calls Play or Stop twice on the same one.
type Controller struct {
	mu      sync.Mutex
	dev     output.Device
	buffer  *audio.Buffer
	voice   output.Voice
	session string
	release chan struct{}
	state   State

	// OnChange, when set, is invoked after every state transition,
	// outside the controller lock.
	OnChange func(State)
}

// New creates a controller bound to dev.
func New(dev output.Device) *Controller {
	return &Controller{dev: dev}
}

// Load replaces the held buffer, terminating any active session. A nil
// buffer just discards the current one.
func (c *Controller) Load(buf *audio.Buffer) {
	c.mu.Lock()
	c.stopLocked()
	c.buffer = buf
	c.mu.Unlock()

	c.notify()
}

// Start begins playback of the loaded buffer from offset 0. If a session
// is already playing it is terminated first. A suspended device is
// resumed before the voice starts.
func (c *Controller) Start() error {
	c.mu.Lock()

	if c.buffer == nil {
		c.mu.Unlock()
		return ErrNoBuffer
	}

	c.stopLocked()

	if c.dev.Suspended() {
		if err := c.dev.Resume(); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("resume output device: %w", err)
		}
	}

	voice, err := c.dev.NewVoice(c.buffer)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("start playback: %w", err)
	}

	id := uuid.New().String()
	frames := c.buffer.Frames()
	release := make(chan struct{})
	c.voice = voice
	c.session = id
	c.release = release
	c.state = Playing

	voice.Play()
	go c.watch(voice, id, release)

	c.mu.Unlock()

	log.Printf("Playback started: session=%s frames=%d", id[:8], frames)
	c.notify()

	return nil
}

// watch waits for the voice's natural end. An explicit stop closes the
// release channel instead, so the watcher exits rather than holding the
// voice alive. The session ID guards against an end event racing a stop
// or a newer session; such an event is a benign no-op.
func (c *Controller) watch(voice output.Voice, id string, release chan struct{}) {
	select {
	case <-voice.Done():
	case <-release:
		return
	}

	c.mu.Lock()
	if c.session != id || c.state != Playing {
		c.mu.Unlock()
		return
	}
	c.voice = nil
	c.session = ""
	c.release = nil
	c.state = Idle
	c.mu.Unlock()

	log.Printf("Playback finished: session=%s", id[:8])
	c.notify()
}

// Stop halts playback and releases the voice. From Idle it is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	stopped := c.stopLocked()
	c.mu.Unlock()

	if stopped {
		c.notify()
	}
}

// stopLocked terminates the active session. Clearing the session ID first
// detaches the natural-end watcher, and closing the release channel makes
// the watcher goroutine exit instead of waiting on a Done that will never
// fire. Callers must hold c.mu.
func (c *Controller) stopLocked() bool {
	if c.state != Playing {
		return false
	}

	voice := c.voice
	c.voice = nil
	c.session = ""
	c.state = Idle
	if c.release != nil {
		close(c.release)
		c.release = nil
	}

	voice.Stop()
	return true
}

// Toggle stops when playing, starts when idle with a loaded buffer.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	playing := c.state == Playing
	c.mu.Unlock()

	if playing {
		c.Stop()
		return nil
	}
	return c.Start()
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loaded reports whether a buffer is available to play.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer != nil
}

func (c *Controller) notify() {
	if c.OnChange != nil {
		c.OnChange(c.State())
	}
}
