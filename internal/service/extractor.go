package service

import (
	"context"
	"fmt"
	"strings"

	"studybyte/internal/domain"
	"studybyte/internal/logger"

	"go.uber.org/zap"
)

// ContentExtractor fetches page text for a URL through a two-tier fallback
// chain: a rich scraper when one is configured, then the search collaborator's
// single-URL fetch. The primary's failure is never surfaced to the caller.
type ContentExtractor struct {
	scraper domain.Scraper
	search  domain.SearchClient
}

// NewContentExtractor creates an extractor. scraper may be nil, which is
// treated the same as a scraper that fails at runtime.
func NewContentExtractor(scraper domain.Scraper, search domain.SearchClient) *ContentExtractor {
	return &ContentExtractor{scraper: scraper, search: search}
}

// Extract returns the page content for url with provenance metadata naming
// the extractor that produced it.
func (e *ContentExtractor) Extract(ctx context.Context, url string) (*domain.Document, error) {
	if e.scraper != nil {
		result, err := e.scraper.Scrape(ctx, url)
		if err == nil && strings.TrimSpace(result.Content) != "" {
			doc := &domain.Document{
				Content: result.Content,
				Metadata: map[string]string{
					domain.MetaSource:    url,
					domain.MetaExtractor: "firecrawl",
				},
			}
			if result.Title != "" {
				doc.Metadata[domain.MetaTitle] = result.Title
			}
			return doc, nil
		}
		if err == nil {
			err = fmt.Errorf("scraper returned empty content")
		}
		// Swallowed on purpose: the fallback runs unconditionally and its
		// outcome is what the caller sees.
		logger.Get().Warn("Primary extraction failed, using fallback",
			zap.String("url", url),
			zap.Error(err))
	}

	if e.search == nil || !e.search.Available() {
		return nil, domain.NewExtractionFailedError(fmt.Errorf("fallback fetch unavailable: no search credential configured"))
	}

	content, err := e.search.FetchURL(ctx, url)
	if err != nil {
		return nil, domain.NewExtractionFailedError(err)
	}

	return &domain.Document{
		Content: content,
		Metadata: map[string]string{
			domain.MetaSource:    url,
			domain.MetaExtractor: "tavily",
		},
	}, nil
}
