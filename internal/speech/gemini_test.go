// ABOUTME: Tests for the REST synthesizer client
// ABOUTME: Tests payload extraction, absence handling, and HTTP failures
package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestSynthesizer(t *testing.T, handler http.HandlerFunc) (*GeminiSynthesizer, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewGemini(GeminiConfig{
		APIKey:  "test-key",
		Model:   "test-tts",
		Voice:   "Kore",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("failed to create synthesizer: %v", err)
	}
	return s, srv
}

func TestGeminiSynthesize(t *testing.T) {
	s, _ := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-tts:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected request contents: %+v", req.Contents)
		}
		if req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != "Kore" {
			t.Errorf("voice not forwarded")
		}

		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{
						"inlineData": map[string]any{
							"mimeType": "audio/L16;codec=pcm;rate=24000",
							"data":     "AAD/fw==",
						},
					}},
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	res, err := s.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if res.Payload != "AAD/fw==" {
		t.Errorf("unexpected payload: %s", res.Payload)
	}
	if res.MimeType != "audio/L16;codec=pcm;rate=24000" {
		t.Errorf("unexpected mime type: %s", res.MimeType)
	}
}

func TestGeminiSynthesizeNoAudio(t *testing.T) {
	s, _ := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "cannot comply"}},
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	_, err := s.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrNoAudio) {
		t.Errorf("expected ErrNoAudio, got %v", err)
	}
}

func TestGeminiSynthesizeEmptyCandidates(t *testing.T) {
	s, _ := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := s.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrNoAudio) {
		t.Errorf("expected ErrNoAudio, got %v", err)
	}
}

func TestGeminiSynthesizeHTTPError(t *testing.T) {
	s, _ := newTestSynthesizer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := s.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for HTTP 429")
	}
}

func TestNewGeminiValidation(t *testing.T) {
	if _, err := NewGemini(GeminiConfig{Model: "m"}); err == nil {
		t.Error("expected error for missing api key")
	}
	if _, err := NewGemini(GeminiConfig{APIKey: "k"}); err == nil {
		t.Error("expected error for missing model")
	}
}
