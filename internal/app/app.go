// ABOUTME: Main application orchestration
// ABOUTME: Runs the summarize, synthesize, decode, play pipeline
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/tsxetra/ai-news-summerizer/internal/player"
	"github.com/tsxetra/ai-news-summerizer/internal/speech"
	"github.com/tsxetra/ai-news-summerizer/internal/store"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/decode"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/output"
)

// Summarizer obtains a text summary for an article URL.
type Summarizer interface {
	Summarize(ctx context.Context, url string) (string, error)
	Close() error
}

// Stage identifies where a pipeline run currently is.
type Stage string

const (
	StageIdle         Stage = "idle"
	StageSummarizing  Stage = "summarizing"
	StageSynthesizing Stage = "synthesizing"
	StagePlaying      Stage = "playing"
)

// Status is pushed to the UI as the pipeline progresses.
type Status struct {
	Stage   Stage
	Summary string
}

// Config wires the app's collaborators.
type Config struct {
	Summarizer  Summarizer
	Synthesizer speech.Synthesizer
	Device      output.Device
	Store       *store.FileStore // optional; saves each synthesis as WAV
	OnStatus    func(Status)
}

// App coordinates one article-to-speech pipeline at a time.
type App struct {
	config     Config
	controller *player.Controller
	summary    string
}

// New creates the application.
func New(config Config) *App {
	a := &App{
		config:     config,
		controller: player.New(config.Device),
	}
	a.controller.OnChange = func(s player.State) {
		if s == player.Playing {
			a.notify(StagePlaying)
		} else {
			a.notify(StageIdle)
		}
	}
	return a
}

// Read runs the full pipeline for url: summarize, synthesize, decode,
// then start playback. Steps are strictly sequential; any active session
// is stopped and its buffer discarded before the run begins, and any
// failure leaves the controller idle with nothing loaded.
func (a *App) Read(ctx context.Context, url string) error {
	a.controller.Load(nil)
	a.summary = ""

	a.notify(StageSummarizing)
	summary, err := a.config.Summarizer.Summarize(ctx, url)
	if err != nil {
		a.notify(StageIdle)
		return fmt.Errorf("summarize: %w", err)
	}
	a.summary = summary

	a.notify(StageSynthesizing)
	result, err := a.config.Synthesizer.Synthesize(ctx, summary)
	if err != nil {
		a.notify(StageIdle)
		return fmt.Errorf("synthesize: %w", err)
	}

	buf, err := a.decodeResult(result)
	if err != nil {
		a.notify(StageIdle)
		return err
	}

	if a.config.Store != nil {
		if _, err := a.config.Store.Save(buf); err != nil {
			log.Printf("Failed to save audio: %v", err)
		}
	}

	a.controller.Load(buf)
	if err := a.controller.Start(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	return nil
}

// decodeResult turns a synthesis payload into a sample buffer using the
// format the service declared.
func (a *App) decodeResult(result *speech.Result) (*audio.Buffer, error) {
	raw, err := decode.Payload(result.Payload)
	if err != nil {
		return nil, err
	}

	format := result.Format()
	if format.Codec == "pcm" {
		return decode.AudioData(raw, a.config.Device, format.SampleRate, format.Channels)
	}

	dec, err := decode.New(format)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.Decode(raw)
}

// Toggle starts or stops playback of the last decoded summary.
func (a *App) Toggle() error {
	return a.controller.Toggle()
}

// Stop halts playback.
func (a *App) Stop() {
	a.controller.Stop()
}

// Playing reports whether audio is currently being produced.
func (a *App) Playing() bool {
	return a.controller.State() == player.Playing
}

// Summary returns the text of the last successful summarization.
func (a *App) Summary() string {
	return a.summary
}

func (a *App) notify(stage Stage) {
	if a.config.OnStatus != nil {
		a.config.OnStatus(Status{Stage: stage, Summary: a.summary})
	}
}

// Close stops playback and releases the collaborators.
func (a *App) Close() {
	a.controller.Stop()

	if a.config.Summarizer != nil {
		_ = a.config.Summarizer.Close()
	}
	if a.config.Synthesizer != nil {
		_ = a.config.Synthesizer.Close()
	}
	if a.config.Device != nil {
		_ = a.config.Device.Close()
	}
}
