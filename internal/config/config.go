// ABOUTME: Application configuration from environment variables
// ABOUTME: Loads .env when present and applies defaults
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application-wide settings populated from the environment.
type Config struct {
	APIKey       string
	SummaryModel string
	SpeechModel  string
	LiveModel    string
	Voice        string
	SampleRate   int
	Channels     int
	AudioDir     string
}

// Load reads the environment (and a root .env if one exists) and returns
// the configuration with defaults applied.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		SummaryModel: getEnv("SUMMARY_MODEL", "gemini-2.5-flash"),
		SpeechModel:  getEnv("SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
		LiveModel:    getEnv("LIVE_MODEL", "gemini-2.0-flash-live-001"),
		Voice:        getEnv("SPEECH_VOICE", "Kore"),
		SampleRate:   getEnvInt("SAMPLE_RATE", 24000),
		Channels:     getEnvInt("CHANNELS", 1),
		AudioDir:     getEnv("AUDIO_DIR", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
