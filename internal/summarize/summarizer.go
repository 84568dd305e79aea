// ABOUTME: Article summarization client
// ABOUTME: Fetches a page and asks the model service for a spoken-style summary
package summarize

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

	"github.com/tsxetra/ai-news-summerizer/internal/article"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const prompt = "Summarize the following article in a few short paragraphs " +
	"suitable for being read aloud. Plain prose only, no headings or lists.\n\n"

// Summarizer obtains a text summary for an article URL.
type Summarizer struct {
	apiKey  string
	model   string
	baseURL string
	fetcher *article.Fetcher
	client  *http.Client
}

// Config configures the summarizer.
type Config struct {
	APIKey  string
	Model   string // e.g. "gemini-2.5-flash"
	BaseURL string // overridable for tests
}

// New creates a summarizer.
func New(config Config) (*Summarizer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	fetcher, err := article.NewFetcher()
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		apiKey:  config.APIKey,
		model:   config.Model,
		baseURL: config.BaseURL,
		fetcher: fetcher,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Wire shapes, trimmed to the text round trip.
type textRequest struct {
	Contents []textContent `json:"contents"`
}

type textContent struct {
	Parts []textPart `json:"parts"`
}

type textPart struct {
	Text string `json:"text"`
}

type textResponse struct {
	Candidates []struct {
		Content textContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize fetches the article at url and returns the model's summary.
func (s *Summarizer) Summarize(ctx context.Context, url string) (string, error) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	reqBody := textRequest{
		Contents: []textContent{{Parts: []textPart{{Text: prompt + body}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal summary request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	log.Printf("Requesting summary: model=%s article=%d bytes", s.model, len(body))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("summary failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var parsed textResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("summary failed: %s", parsed.Error.Message)
	}

	var sb strings.Builder
	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", fmt.Errorf("summary failed: empty response")
	}

	log.Printf("Summary received: %d chars", len(summary))
	return summary, nil
}

// Close releases summarizer resources and drops the article cache.
func (s *Summarizer) Close() error {
	s.client.CloseIdleConnections()
	return s.fetcher.Cleanup()
}
