package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"studybyte/internal/domain"
	"studybyte/internal/logger"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.tavily.com"

// TavilyClient implements domain.SearchClient against the Tavily REST API.
// There is no maintained Go SDK, so this speaks the API directly with a
// timeout-bounded http.Client.
type TavilyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*TavilyClient)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *TavilyClient) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *TavilyClient) { c.httpClient = client }
}

// NewTavilyClient creates a search client. An empty apiKey yields a client
// that reports itself unavailable rather than an error, so callers can wire
// it unconditionally.
func NewTavilyClient(apiKey string, opts ...Option) *TavilyClient {
	c := &TavilyClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether a search credential is configured.
func (c *TavilyClient) Available() bool {
	return c.apiKey != ""
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Search issues a bounded-count web search and returns result bodies as documents.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]domain.Document, error) {
	if !c.Available() {
		return nil, domain.NewSearchUnavailableError()
	}

	var resp searchResponse
	err := c.post(ctx, "/search", searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: "advanced",
		MaxResults:  maxResults,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}

	docs := make([]domain.Document, 0, len(resp.Results))
	for _, r := range resp.Results {
		docs = append(docs, domain.Document{
			Content: r.Content,
			Metadata: map[string]string{
				domain.MetaSource: r.URL,
				domain.MetaTitle:  r.Title,
				"score":           strconv.FormatFloat(r.Score, 'f', -1, 64),
			},
		})
	}
	logger.Get().Debug("Tavily search completed",
		zap.String("query", query),
		zap.Int("results", len(docs)))
	return docs, nil
}

type extractRequest struct {
	APIKey string   `json:"api_key"`
	URLs   []string `json:"urls"`
}

type extractResponse struct {
	Results []struct {
		URL        string `json:"url"`
		RawContent string `json:"raw_content"`
	} `json:"results"`
}

// FetchURL extracts the content of a single URL via the extract endpoint.
func (c *TavilyClient) FetchURL(ctx context.Context, url string) (string, error) {
	if !c.Available() {
		return "", domain.NewSearchUnavailableError()
	}

	var resp extractResponse
	err := c.post(ctx, "/extract", extractRequest{APIKey: c.apiKey, URLs: []string{url}}, &resp)
	if err != nil {
		return "", fmt.Errorf("content extraction failed: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", nil
	}
	return resp.Results[0].RawContent, nil
}

func (c *TavilyClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tavily API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.SearchClient = (*TavilyClient)(nil)
