package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studybyte/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAvailable(t *testing.T) {
	assert.True(t, NewTavilyClient("key").Available())
	assert.False(t, NewTavilyClient("").Available())
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)

		var req searchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req.APIKey)
		assert.Equal(t, "go concurrency", req.Query)
		assert.Equal(t, "advanced", req.SearchDepth)
		assert.Equal(t, 3, req.MaxResults)

		json.NewEncoder(w).Encode(searchResponse{Results: []searchResult{
			{Title: "First", URL: "https://a.example", Content: "alpha", Score: 0.9},
			{Title: "Second", URL: "https://b.example", Content: "beta", Score: 0.5},
		}})
	}))
	defer srv.Close()

	client := NewTavilyClient("test-key", WithBaseURL(srv.URL))
	docs, err := client.Search(context.Background(), "go concurrency", 3)
	assert.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "alpha", docs[0].Content)
	assert.Equal(t, "https://a.example", docs[0].Metadata[domain.MetaSource])
	assert.Equal(t, "First", docs[0].Metadata[domain.MetaTitle])
	assert.Equal(t, "0.9", docs[0].Metadata["score"])
}

func TestSearchUnavailableWithoutKey(t *testing.T) {
	_, err := NewTavilyClient("").Search(context.Background(), "query", 3)
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrSearchUnavailable, domainErr.Code)
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewTavilyClient("key", WithBaseURL(srv.URL)).Search(context.Background(), "query", 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/extract", r.URL.Path)

		var req extractRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"https://example.com/article"}, req.URLs)

		w.Write([]byte(`{"results":[{"url":"https://example.com/article","raw_content":"article body"}]}`))
	}))
	defer srv.Close()

	content, err := NewTavilyClient("key", WithBaseURL(srv.URL)).
		FetchURL(context.Background(), "https://example.com/article")
	assert.NoError(t, err)
	assert.Equal(t, "article body", content)
}

func TestFetchURLEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	content, err := NewTavilyClient("key", WithBaseURL(srv.URL)).
		FetchURL(context.Background(), "https://example.com")
	assert.NoError(t, err)
	assert.Empty(t, content)
}
