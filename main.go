// ABOUTME: Entry point for the news reader
// ABOUTME: Parses CLI flags, wires the pipeline, and starts the TUI
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tsxetra/ai-news-summerizer/internal/app"
	"github.com/tsxetra/ai-news-summerizer/internal/config"
	"github.com/tsxetra/ai-news-summerizer/internal/speech"
	"github.com/tsxetra/ai-news-summerizer/internal/store"
	"github.com/tsxetra/ai-news-summerizer/internal/summarize"
	"github.com/tsxetra/ai-news-summerizer/internal/ui"
	"github.com/tsxetra/ai-news-summerizer/internal/version"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/output"
)

var (
	articleURL = flag.String("url", "", "Article URL to read immediately")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, read -url once and exit")
	logFile    = flag.String("log-file", "news-reader.log", "Log file path")
	useLive    = flag.Bool("live", false, "Use the Live API WebSocket synthesizer")
	save       = flag.Bool("save", false, "Save each synthesis as a WAV file")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// One-shot mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	cfg := config.Load()
	if cfg.APIKey == "" {
		log.Fatalf("GEMINI_API_KEY is not set")
	}

	if !useTUI {
		log.Printf("Starting %s %s", version.Product, version.Version)
		if *articleURL == "" {
			log.Fatalf("-no-tui requires -url")
		}
	}

	// Collaborators
	summarizer, err := summarize.New(summarize.Config{
		APIKey: cfg.APIKey,
		Model:  cfg.SummaryModel,
	})
	if err != nil {
		log.Fatalf("Failed to create summarizer: %v", err)
	}

	var synthesizer speech.Synthesizer
	if *useLive {
		synthesizer, err = speech.NewLive(speech.LiveConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.LiveModel,
			Voice:  cfg.Voice,
		})
	} else {
		synthesizer, err = speech.NewGemini(speech.GeminiConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.SpeechModel,
			Voice:  cfg.Voice,
		})
	}
	if err != nil {
		log.Fatalf("Failed to create synthesizer: %v", err)
	}

	var fileStore *store.FileStore
	if *save {
		fileStore, err = store.NewFileStore(cfg.AudioDir)
		if err != nil {
			log.Fatalf("Failed to create audio store: %v", err)
		}
	}

	device := output.NewOto(cfg.SampleRate, cfg.Channels)

	// TUI setup
	var tuiProg *tea.Program
	var control *ui.Control

	if useTUI {
		control = ui.NewControl()
		tuiProg, err = ui.Run(control)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
	}

	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	reader := app.New(app.Config{
		Summarizer:  summarizer,
		Synthesizer: synthesizer,
		Device:      device,
		Store:       fileStore,
		OnStatus: func(status app.Status) {
			playing := status.Stage == app.StagePlaying
			updateTUI(ui.StatusMsg{
				Stage:   string(status.Stage),
				Summary: status.Summary,
				Playing: &playing,
			})
		},
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if !useTUI {
		runOnce(ctx, reader, *articleURL, sigChan)
		return
	}

	go controlLoop(ctx, reader, control, updateTUI)

	if *articleURL != "" {
		control.Reads <- *articleURL
	}

	// Run the TUI on the main goroutine; a signal tears it down
	go func() {
		select {
		case <-sigChan:
			log.Printf("Shutdown signal received")
		case <-control.Quits:
			log.Printf("Received quit from TUI")
		}
		cancel()
		tuiProg.Quit()
	}()

	if _, err := tuiProg.Run(); err != nil {
		log.Printf("TUI error: %v", err)
	}

	log.Printf("Reader stopped")
}

// runOnce reads a single article, plays it, and exits on end or signal
func runOnce(ctx context.Context, reader *app.App, url string, sigChan chan os.Signal) {
	log.Printf("Reading %s", url)
	if err := reader.Read(ctx, url); err != nil {
		log.Fatalf("Read failed: %v", err)
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			log.Printf("Shutdown signal received")
			reader.Stop()
			return
		case <-ticker.C:
			if !reader.Playing() {
				log.Printf("Playback finished")
				return
			}
		}
	}
}

// controlLoop processes TUI intents
func controlLoop(ctx context.Context, reader *app.App, control *ui.Control, updateTUI func(ui.StatusMsg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case url := <-control.Reads:
			err := reader.Read(ctx, url)
			busy := false
			msg := ui.StatusMsg{Busy: &busy}
			if err != nil {
				log.Printf("Read failed: %v", err)
				msg.Err = err.Error()
			}
			updateTUI(msg)
		case <-control.Toggles:
			if err := reader.Toggle(); err != nil {
				log.Printf("Toggle: %v", err)
			}
		}
	}
}
