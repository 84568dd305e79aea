// ABOUTME: REST speech synthesizer client
// ABOUTME: Requests audio-modality generation and returns the inline payload
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiSynthesizer implements Synthesizer against the generative
// language REST API using the audio response modality.
type GeminiSynthesizer struct {
	apiKey  string
	model   string
	voice   string
	baseURL string
	client  *http.Client
}

// GeminiConfig configures the REST synthesizer.
type GeminiConfig struct {
	APIKey  string
	Model   string // e.g. "gemini-2.5-flash-preview-tts"
	Voice   string // prebuilt voice name, e.g. "Kore"
	BaseURL string // overridable for tests
}

// NewGemini creates a REST synthesizer.
func NewGemini(config GeminiConfig) (*GeminiSynthesizer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	return &GeminiSynthesizer{
		apiKey:  config.APIKey,
		model:   config.Model,
		voice:   config.Voice,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: 90 * time.Second},
	}, nil
}

// Request/response wire shapes, trimmed to the fields this client uses.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig *voiceConfig `json:"voiceConfig,omitempty"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig *prebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitempty"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize converts text to a speech payload.
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, text string) (*Result, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
		},
	}
	if s.voice != "" {
		reqBody.GenerationConfig.SpeechConfig = &speechConfig{
			VoiceConfig: &voiceConfig{
				PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: s.voice},
			},
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	log.Printf("Requesting synthesis: model=%s text=%d chars", s.model, len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("synthesis failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode synthesis response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("synthesis failed: %s", parsed.Error.Message)
	}

	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				log.Printf("Synthesis complete: %d base64 chars, mime=%s",
					len(p.InlineData.Data), p.InlineData.MimeType)
				return &Result{
					Payload:  p.InlineData.Data,
					MimeType: p.InlineData.MimeType,
				}, nil
			}
		}
	}

	return nil, ErrNoAudio
}

// Close releases synthesizer resources.
func (s *GeminiSynthesizer) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
