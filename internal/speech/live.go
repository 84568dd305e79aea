// ABOUTME: WebSocket speech synthesizer client
// ABOUTME: Streams audio chunks from a bidirectional generation session
package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/decode"
)

const defaultLiveHost = "generativelanguage.googleapis.com"
const livePath = "/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// LiveSynthesizer implements Synthesizer over the bidirectional WebSocket
// API. Audio arrives as a stream of inline base64 chunks; they are
// collected until turn completion and re-encoded as one payload, so the
// caller sees the same Result contract as the REST client.
type LiveSynthesizer struct {
	apiKey string
	model  string
	voice  string
	host   string // overridable for tests
	scheme string // "wss", or "ws" for tests
}

// LiveConfig configures the WebSocket synthesizer.
type LiveConfig struct {
	APIKey string
	Model  string
	Voice  string
	Host   string
	Scheme string
}

// NewLive creates a WebSocket synthesizer.
func NewLive(config LiveConfig) (*LiveSynthesizer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if config.Host == "" {
		config.Host = defaultLiveHost
	}
	if config.Scheme == "" {
		config.Scheme = "wss"
	}

	return &LiveSynthesizer{
		apiKey: config.APIKey,
		model:  config.Model,
		voice:  config.Voice,
		host:   config.Host,
		scheme: config.Scheme,
	}, nil
}

// Wire shapes for the bidirectional session, trimmed to what the
// synthesizer needs.
type liveSetup struct {
	Setup struct {
		Model            string            `json:"model"`
		GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	} `json:"setup"`
}

type liveClientContent struct {
	ClientContent struct {
		Turns        []liveTurn `json:"turns"`
		TurnComplete bool       `json:"turnComplete"`
	} `json:"clientContent"`
}

type liveTurn struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type liveServerMessage struct {
	SetupComplete *struct{} `json:"setupComplete"`
	ServerContent *struct {
		ModelTurn    *content `json:"modelTurn"`
		TurnComplete bool     `json:"turnComplete"`
	} `json:"serverContent"`
}

// Synthesize runs one session: setup, one user turn, then collects audio
// chunks until the model's turn completes.
func (s *LiveSynthesizer) Synthesize(ctx context.Context, text string) (*Result, error) {
	u := url.URL{Scheme: s.scheme, Host: s.host, Path: livePath, RawQuery: "key=" + url.QueryEscape(s.apiKey)}
	log.Printf("Connecting to live synthesis: %s", u.Host)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("live synthesis dial failed: %w", err)
	}
	defer conn.Close()

	// Unblock reads when the caller gives up
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	var setup liveSetup
	setup.Setup.Model = "models/" + s.model
	setup.Setup.GenerationConfig = &generationConfig{
		ResponseModalities: []string{"AUDIO"},
	}
	if s.voice != "" {
		setup.Setup.GenerationConfig.SpeechConfig = &speechConfig{
			VoiceConfig: &voiceConfig{
				PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: s.voice},
			},
		}
	}
	if err := conn.WriteJSON(setup); err != nil {
		return nil, fmt.Errorf("live synthesis setup failed: %w", err)
	}

	var msg liveServerMessage
	if err := readLive(conn, &msg); err != nil {
		return nil, err
	}
	if msg.SetupComplete == nil {
		return nil, fmt.Errorf("live synthesis: expected setup acknowledgement")
	}

	var turn liveClientContent
	turn.ClientContent.Turns = []liveTurn{{Role: "user", Parts: []part{{Text: text}}}}
	turn.ClientContent.TurnComplete = true
	if err := conn.WriteJSON(turn); err != nil {
		return nil, fmt.Errorf("live synthesis send failed: %w", err)
	}

	var raw []byte
	mimeType := ""
	for {
		var msg liveServerMessage
		if err := readLive(conn, &msg); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		if msg.ServerContent == nil {
			continue
		}

		if msg.ServerContent.ModelTurn != nil {
			for _, p := range msg.ServerContent.ModelTurn.Parts {
				if p.InlineData == nil || p.InlineData.Data == "" {
					continue
				}
				chunk, err := decode.Payload(p.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("live synthesis chunk: %w", err)
				}
				raw = append(raw, chunk...)
				if mimeType == "" {
					mimeType = p.InlineData.MimeType
				}
			}
		}

		if msg.ServerContent.TurnComplete {
			break
		}
	}

	if len(raw) == 0 {
		return nil, ErrNoAudio
	}

	log.Printf("Live synthesis complete: %d bytes, mime=%s", len(raw), mimeType)

	return &Result{
		Payload:  base64.StdEncoding.EncodeToString(raw),
		MimeType: mimeType,
	}, nil
}

// readLive reads and decodes one server message.
func readLive(conn *websocket.Conn, msg *liveServerMessage) error {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("live synthesis read failed: %w", err)
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("live synthesis parse failed: %w", err)
	}
	return nil
}

// Close releases synthesizer resources.
func (s *LiveSynthesizer) Close() error {
	return nil
}
