// ABOUTME: Tests for the playback controller
// ABOUTME: Tests the state machine, single-voice policy, and end events
package player

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/output"
)

func testBuffer() *audio.Buffer {
	return audio.NewBuffer(24000, 1, 240)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestStartWithoutBuffer(t *testing.T) {
	c := New(output.NewStub(24000))

	err := c.Start()
	if err == nil {
		t.Fatal("expected error starting with no buffer")
	}
	if !errors.Is(err, ErrNoBuffer) {
		t.Errorf("expected ErrNoBuffer, got %v", err)
	}
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}
}

func TestStartAndStop(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if c.State() != Playing {
		t.Errorf("expected Playing, got %v", c.State())
	}
	if dev.Active() != 1 {
		t.Errorf("expected 1 active voice, got %d", dev.Active())
	}

	c.Stop()
	if c.State() != Idle {
		t.Errorf("expected Idle after stop, got %v", c.State())
	}
	if dev.Active() != 0 {
		t.Errorf("expected 0 active voices after stop, got %d", dev.Active())
	}
}

func TestStopFromIdleIsNoop(t *testing.T) {
	c := New(output.NewStub(24000))

	c.Stop()
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}
}

func TestSingleVoiceInvariant(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("second start failed: %v", err)
	}

	if dev.Active() != 1 {
		t.Errorf("expected exactly 1 active voice, got %d", dev.Active())
	}
	if dev.Created() != 2 {
		t.Errorf("expected 2 voices allocated, got %d", dev.Created())
	}
}

func TestNaturalEndTransitionsToIdle(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	dev.EndAll()
	waitFor(t, func() bool { return c.State() == Idle })

	// A follow-up stop after the natural end stays a no-op
	c.Stop()
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}
}

func TestLateEndEventIsNoop(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.Stop()

	// Device reports the end after the session was already stopped
	dev.EndAll()
	time.Sleep(20 * time.Millisecond)
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}
}

func TestVoiceNeverControlledTwice(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.Stop()
	c.Stop()

	voices := dev.Voices()
	if len(voices) != 1 {
		t.Fatalf("expected 1 voice, got %d", len(voices))
	}

	first := voices[0]
	if first.PlayCount() != 1 {
		t.Errorf("expected 1 play, got %d", first.PlayCount())
	}
	if first.StopCount() != 1 {
		t.Errorf("expected 1 stop, got %d", first.StopCount())
	}
}

func TestToggle(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Toggle(); err != nil {
		t.Fatalf("toggle to playing failed: %v", err)
	}
	if c.State() != Playing {
		t.Errorf("expected Playing, got %v", c.State())
	}

	if err := c.Toggle(); err != nil {
		t.Fatalf("toggle to idle failed: %v", err)
	}
	if c.State() != Idle {
		t.Errorf("expected Idle, got %v", c.State())
	}
}

func TestToggleWithoutBuffer(t *testing.T) {
	c := New(output.NewStub(24000))

	if err := c.Toggle(); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("expected ErrNoBuffer, got %v", err)
	}
}

func TestStartResumesSuspendedDevice(t *testing.T) {
	dev := output.NewStub(24000)
	dev.Suspend()
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if dev.Suspended() {
		t.Error("expected device resumed before starting")
	}
}

func TestLoadReplacesBufferAndStops(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	c.Load(testBuffer())
	if c.State() != Idle {
		t.Errorf("expected Idle after load, got %v", c.State())
	}
	if dev.Active() != 0 {
		t.Errorf("expected 0 active voices, got %d", dev.Active())
	}
	if !c.Loaded() {
		t.Error("expected new buffer to be loaded")
	}
}

func TestStateChangeCallback(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	var states []State
	c.OnChange = func(s State) { states = append(states, s) }

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.Stop()

	if len(states) < 2 {
		t.Fatalf("expected at least 2 notifications, got %d", len(states))
	}
	if states[len(states)-1] != Idle {
		t.Errorf("expected final state Idle, got %v", states[len(states)-1])
	}
}

func TestStopReleasesWatcher(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)
	c.Load(testBuffer())

	// Warm up one full cycle so the baseline includes any lazily
	// started runtime goroutines.
	idle := runtime.NumGoroutine()
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	c.Stop()
	waitFor(t, func() bool { return runtime.NumGoroutine() <= idle })
	base := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		if err := c.Start(); err != nil {
			t.Fatalf("start %d failed: %v", i, err)
		}
		c.Stop()
	}

	// Every stopped session's watcher must exit; allow slack for
	// unrelated runtime goroutines.
	waitFor(t, func() bool { return runtime.NumGoroutine() <= base+2 })
	if n := runtime.NumGoroutine(); n > base+2 {
		t.Errorf("expected watcher goroutines to exit, have %d (baseline %d)", n, base)
	}
}

func TestLoadReleasesWatcher(t *testing.T) {
	dev := output.NewStub(24000)
	c := New(dev)

	c.Load(testBuffer())
	if err := c.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	base := runtime.NumGoroutine()

	// Replacing the buffer stops the session; its watcher must exit.
	c.Load(testBuffer())

	waitFor(t, func() bool { return runtime.NumGoroutine() < base })
	if n := runtime.NumGoroutine(); n >= base {
		t.Errorf("expected watcher to exit after load, have %d (baseline %d)", n, base)
	}
}
