package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"studybyte/internal/domain"
)

const defaultBaseURL = "https://api.firecrawl.dev"

// FirecrawlScraper implements domain.Scraper against the Firecrawl v1 scrape
// endpoint. It is an optional collaborator: callers construct it only when a
// credential is configured.
type FirecrawlScraper struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*FirecrawlScraper)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(s *FirecrawlScraper) { s.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *FirecrawlScraper) { s.httpClient = client }
}

func NewFirecrawlScraper(apiKey string, opts ...Option) (*FirecrawlScraper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Firecrawl API key cannot be empty")
	}
	s := &FirecrawlScraper{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
		Content  string `json:"content"`
		Metadata struct {
			Title string `json:"title"`
		} `json:"metadata"`
	} `json:"data"`
}

// Scrape fetches url as markdown with title metadata.
func (s *FirecrawlScraper) Scrape(ctx context.Context, url string) (*domain.ScrapeResult, error) {
	payload, err := json.Marshal(scrapeRequest{URL: url, Formats: []string{"markdown"}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/scrape", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("firecrawl API returned status %d", resp.StatusCode)
	}

	var parsed scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if !parsed.Success {
		return nil, fmt.Errorf("firecrawl scrape was not successful")
	}

	content := parsed.Data.Markdown
	if content == "" {
		content = parsed.Data.Content
	}
	return &domain.ScrapeResult{Content: content, Title: parsed.Data.Metadata.Title}, nil
}

var _ domain.Scraper = (*FirecrawlScraper)(nil)
