// ABOUTME: Article fetcher for remote pages
// ABOUTME: Downloads page bodies and caches them in a temp directory
package article

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// Bodies beyond this are truncated before summarization.
const maxBodyBytes = 1 << 20

// Fetcher downloads article pages.
type Fetcher struct {
	cacheDir string
	client   *http.Client
}

// NewFetcher creates an article fetcher with a temp-directory cache.
func NewFetcher() (*Fetcher, error) {
	cacheDir := filepath.Join(os.TempDir(), "news-reader-articles")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Fetcher{
		cacheDir: cacheDir,
		client:   &http.Client{},
	}, nil
}

// Fetch returns the page body for url, serving repeats from cache.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("article url is empty")
	}

	hash := sha256.Sum256([]byte(url))
	cachePath := filepath.Join(f.cacheDir, fmt.Sprintf("%x.html", hash[:8]))

	if body, err := os.ReadFile(cachePath); err == nil {
		log.Printf("Article cache hit: %s", cachePath)
		return string(body), nil
	}

	log.Printf("Fetching article: %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build article request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article fetch failed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read article: %w", err)
	}

	if err := os.WriteFile(cachePath, body, 0644); err != nil {
		log.Printf("Failed to cache article: %v", err)
	}

	return string(body), nil
}

// Cleanup removes cached articles.
func (f *Fetcher) Cleanup() error {
	return os.RemoveAll(f.cacheDir)
}
