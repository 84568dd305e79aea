// ABOUTME: Oto-based audio output implementation
// ABOUTME: Lazily connects the process-wide device and allocates one-shot voices
package output

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/encode"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/resample"
)

// oto allows exactly one context per process, so the connection is shared
// across all OtoDevice handles and never torn down.
var (
	otoMu       sync.Mutex
	otoCtx      *oto.Context
	otoRate     int
	otoChannels int
)

// OtoDevice is the oto-backed output device. The underlying context is
// created on first use and its sample rate is fixed from then on.
type OtoDevice struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	suspended  bool
	connected  bool
}

// NewOto returns a device handle that will connect with the given format
// on first use.
func NewOto(sampleRate, channels int) *OtoDevice {
	return &OtoDevice{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// ensure connects the process-wide oto context if it does not exist yet.
// Callers must hold d.mu.
func (d *OtoDevice) ensure() error {
	if d.connected {
		return nil
	}

	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   d.sampleRate,
			ChannelCount: d.channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		}

		<-readyChan

		otoCtx = ctx
		otoRate = d.sampleRate
		otoChannels = d.channels

		log.Printf("Audio output initialized: %dHz, %d channels", d.sampleRate, d.channels)
	} else if otoRate != d.sampleRate || otoChannels != d.channels {
		// oto cannot reinitialize; keep the established format
		log.Printf("Warning: output already connected at %dHz %dch, requested %dHz %dch ignored",
			otoRate, otoChannels, d.sampleRate, d.channels)
	}

	d.sampleRate = otoRate
	d.channels = otoChannels
	d.connected = true

	return nil
}

// NewVoice allocates a single-use playback instance for buf, resampling
// to the device's fixed rate when the buffer was produced at another one.
func (d *OtoDevice) NewVoice(buf *audio.Buffer) (Voice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensure(); err != nil {
		return nil, err
	}

	samples := encode.Interleave(buf)
	channels := buf.Channels()

	if channels == 1 && d.channels > 1 {
		samples = spread(samples, d.channels)
		channels = d.channels
	} else if channels != d.channels {
		return nil, fmt.Errorf("%w: buffer has %d channels, device has %d",
			ErrDeviceUnavailable, channels, d.channels)
	}

	if buf.SampleRate != d.sampleRate {
		r := resample.New(buf.SampleRate, d.sampleRate, channels)
		samples = r.Resample(samples)
	}

	player := otoCtx.NewPlayer(bytes.NewReader(encode.PCM16Bytes(samples)))

	v := &otoVoice{
		player: player,
		done:   make(chan struct{}),
		halt:   make(chan struct{}),
	}
	return v, nil
}

// Resume wakes the device after a platform suspension. Connecting for the
// first time counts as a resume.
func (d *OtoDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensure(); err != nil {
		return err
	}

	if !d.suspended {
		return nil
	}

	if err := otoCtx.Resume(); err != nil {
		return fmt.Errorf("%w: resume failed: %v", ErrDeviceUnavailable, err)
	}
	d.suspended = false

	return nil
}

// Suspended reports whether the device is suspended.
func (d *OtoDevice) Suspended() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.suspended
}

// SampleRate returns the device output rate.
func (d *OtoDevice) SampleRate() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sampleRate
}

// Close suspends the shared context. The context itself persists for the
// life of the process.
func (d *OtoDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected || d.suspended {
		return nil
	}

	if err := otoCtx.Suspend(); err != nil {
		return fmt.Errorf("suspend failed: %w", err)
	}
	d.suspended = true

	return nil
}

// otoVoice wraps one oto player. Players cannot be restarted once stopped,
// matching the single-use Voice contract.
type otoVoice struct {
	player   *oto.Player
	done     chan struct{}
	halt     chan struct{}
	stopOnce sync.Once
}

// Play begins playback and watches for the natural end.
func (v *otoVoice) Play() {
	v.player.Play()
	go v.watch()
}

// watch polls the player until it drains, then fires the done event.
// An explicit Stop ends the watch without firing it.
func (v *otoVoice) watch() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-v.halt:
			return
		case <-ticker.C:
			if v.player.IsPlaying() {
				continue
			}
			// An explicit Stop may win the race; only the natural
			// end fires the done event.
			natural := false
			v.stopOnce.Do(func() {
				close(v.halt)
				_ = v.player.Close()
				natural = true
			})
			if natural {
				close(v.done)
			}
			return
		}
	}
}

// Stop halts sound production without firing the done event.
func (v *otoVoice) Stop() {
	v.stopOnce.Do(func() {
		close(v.halt)
		_ = v.player.Close()
	})
}

// Done reports the natural end of playback.
func (v *otoVoice) Done() <-chan struct{} {
	return v.done
}

// spread duplicates mono samples across the given channel count.
func spread(mono []float32, channels int) []float32 {
	out := make([]float32, len(mono)*channels)
	for i, s := range mono {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = s
		}
	}
	return out
}
