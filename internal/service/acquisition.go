package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"studybyte/internal/domain"
	"studybyte/internal/logger"

	"go.uber.org/zap"
)

// URLExtractor resolves a URL to a single document. Satisfied by ContentExtractor.
type URLExtractor interface {
	Extract(ctx context.Context, url string) (*domain.Document, error)
}

// AcquisitionService turns an input kind and payload into normalized raw text
// plus provenance-tagged study material chunks. Chunk size and overlap are
// owned by the injected splitter, not by this service.
type AcquisitionService struct {
	loader     domain.FileLoader
	splitter   domain.TextSplitter
	extractor  URLExtractor
	search     domain.SearchClient
	maxResults int
}

func NewAcquisitionService(
	loader domain.FileLoader,
	splitter domain.TextSplitter,
	extractor URLExtractor,
	search domain.SearchClient,
	maxSearchResults int,
) *AcquisitionService {
	return &AcquisitionService{
		loader:     loader,
		splitter:   splitter,
		extractor:  extractor,
		search:     search,
		maxResults: maxSearchResults,
	}
}

// Acquire dispatches on the input kind. The switch is exhaustive over the
// closed InputKind set; anything else is UnsupportedInputKind.
func (s *AcquisitionService) Acquire(ctx context.Context, kind domain.InputKind, payload string) (string, []domain.StudyMaterial, error) {
	switch kind {
	case domain.InputFile:
		return s.acquireFile(ctx, payload)
	case domain.InputText:
		return s.acquireText(ctx, payload)
	case domain.InputURL:
		return s.acquireURL(ctx, payload)
	case domain.InputSearch:
		return s.acquireSearch(ctx, payload)
	default:
		return "", nil, domain.NewUnsupportedInputKindError(string(kind))
	}
}

// validateFilePath checks existence and extension before any loader work.
func (s *AcquisitionService) validateFilePath(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range s.loader.SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func (s *AcquisitionService) acquireFile(ctx context.Context, path string) (string, []domain.StudyMaterial, error) {
	if !s.validateFilePath(path) {
		return "", nil, domain.NewInvalidFileError(path)
	}

	docs, err := s.loader.Load(ctx, path)
	if err != nil {
		return "", nil, err
	}

	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}
	raw := strings.Join(contents, "\n\n")

	materials, err := s.chunk(docs, path, "")
	if err != nil {
		return "", nil, err
	}
	return raw, materials, nil
}

func (s *AcquisitionService) acquireText(ctx context.Context, text string) (string, []domain.StudyMaterial, error) {
	doc := domain.Document{
		Content:  text,
		Metadata: map[string]string{domain.MetaSource: domain.SourceDirectInput},
	}
	materials, err := s.chunk([]domain.Document{doc}, domain.SourceDirectInput, "")
	if err != nil {
		return "", nil, err
	}
	// Raw content is the payload verbatim; chunking artifacts never leak here.
	return text, materials, nil
}

func (s *AcquisitionService) acquireURL(ctx context.Context, url string) (string, []domain.StudyMaterial, error) {
	doc, err := s.extractor.Extract(ctx, url)
	if err != nil {
		return "", nil, err
	}
	logger.Get().Debug("URL content extracted",
		zap.String("url", url),
		zap.String("extractor", doc.Metadata[domain.MetaExtractor]),
		zap.Int("chars", len(doc.Content)))

	materials, err := s.chunk([]domain.Document{*doc}, url, "")
	if err != nil {
		return "", nil, err
	}
	return doc.Content, materials, nil
}

func (s *AcquisitionService) acquireSearch(ctx context.Context, query string) (string, []domain.StudyMaterial, error) {
	if s.search == nil || !s.search.Available() {
		return "", nil, domain.NewSearchUnavailableError()
	}

	results, err := s.search.Search(ctx, query, s.maxResults)
	if err != nil {
		return "", nil, err
	}

	contents := make([]string, 0, len(results))
	for _, d := range results {
		contents = append(contents, d.Content)
	}
	combined := strings.Join(contents, "\n\n")

	source := "search:" + query
	doc := domain.Document{
		Content:  combined,
		Metadata: map[string]string{domain.MetaSource: source},
	}
	materials, err := s.chunk([]domain.Document{doc}, source, query)
	if err != nil {
		return "", nil, err
	}
	return combined, materials, nil
}

// chunk splits documents and attaches provenance. Chunk order follows source
// document order, which the splitter preserves.
func (s *AcquisitionService) chunk(docs []domain.Document, fallbackSource, topic string) ([]domain.StudyMaterial, error) {
	chunks, err := s.splitter.SplitDocuments(docs)
	if err != nil {
		return nil, err
	}

	materials := make([]domain.StudyMaterial, 0, len(chunks))
	for _, c := range chunks {
		source := c.Metadata[domain.MetaSource]
		if source == "" {
			source = fallbackSource
		}
		materials = append(materials, domain.StudyMaterial{
			Content: c.Content,
			Source:  source,
			Topic:   topic,
		})
	}
	return materials, nil
}
