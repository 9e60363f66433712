package domain

import "context"

// TextGenerator is the LLM call abstraction. Implementations may return prose,
// near-JSON, or empty text; callers must tolerate all three.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// FileLoader loads a document from disk, keyed by file extension.
// It returns an UnsupportedFileType error for unknown extensions.
type FileLoader interface {
	Load(ctx context.Context, path string) ([]Document, error)
	SupportedExtensions() []string
}

// TextSplitter splits documents into bounded, overlapping chunks. Chunk size
// and overlap are configured on the implementation, not per call.
type TextSplitter interface {
	SplitDocuments(docs []Document) ([]Document, error)
}

// SearchClient is the web search collaborator. Available reports whether a
// search credential is configured; the other methods fail when it is not.
type SearchClient interface {
	Available() bool
	Search(ctx context.Context, query string, maxResults int) ([]Document, error)
	FetchURL(ctx context.Context, url string) (string, error)
}

// ScrapeResult is the output of a rich URL extraction.
type ScrapeResult struct {
	Content string
	Title   string
}

// Scraper is the optional rich URL-extraction collaborator. A nil Scraper is
// treated identically to a runtime failure by the extraction fallback chain.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*ScrapeResult, error)
}
