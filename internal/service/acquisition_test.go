package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studybyte/internal/domain"

	"github.com/stretchr/testify/assert"
)

type mockLoader struct {
	loadFunc func(path string) ([]domain.Document, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	return m.loadFunc(path)
}

func (m *mockLoader) SupportedExtensions() []string {
	return []string{".pdf", ".txt", ".md", ".html"}
}

// passthroughSplitter returns each document as a single chunk, or splits on a
// marker when configured, preserving metadata like the real splitter.
type passthroughSplitter struct {
	splitOn string
}

func (s *passthroughSplitter) SplitDocuments(docs []domain.Document) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range docs {
		parts := []string{d.Content}
		if s.splitOn != "" {
			parts = strings.Split(d.Content, s.splitOn)
		}
		for _, p := range parts {
			out = append(out, domain.Document{Content: p, Metadata: d.Metadata})
		}
	}
	return out, nil
}

type stubExtractor struct {
	doc *domain.Document
	err error
}

func (s *stubExtractor) Extract(ctx context.Context, url string) (*domain.Document, error) {
	return s.doc, s.err
}

func newTestAcquisition(loader domain.FileLoader, split domain.TextSplitter, extractor URLExtractor, search domain.SearchClient) *AcquisitionService {
	if loader == nil {
		loader = &mockLoader{loadFunc: func(path string) ([]domain.Document, error) {
			return nil, errors.New("loader not stubbed")
		}}
	}
	if split == nil {
		split = &passthroughSplitter{}
	}
	return NewAcquisitionService(loader, split, extractor, search, 3)
}

func TestAcquireText(t *testing.T) {
	svc := newTestAcquisition(nil, &passthroughSplitter{splitOn: "|"}, nil, nil)

	raw, materials, err := svc.Acquire(context.Background(), domain.InputText, "part one|part two")
	assert.NoError(t, err)
	// Raw content is the payload verbatim, untouched by chunking.
	assert.Equal(t, "part one|part two", raw)
	assert.Len(t, materials, 2)
	assert.Equal(t, "part one", materials[0].Content)
	assert.Equal(t, "part two", materials[1].Content)
	for _, m := range materials {
		assert.Equal(t, domain.SourceDirectInput, m.Source)
		assert.Empty(t, m.Topic)
	}
}

func TestAcquireUnsupportedKind(t *testing.T) {
	svc := newTestAcquisition(nil, nil, nil, nil)
	_, _, err := svc.Acquire(context.Background(), domain.InputKind("carrier-pigeon"), "coo")
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrUnsupportedInputKind, domainErr.Code)
}

func TestAcquireURL(t *testing.T) {
	extractor := &stubExtractor{doc: &domain.Document{
		Content:  "page content",
		Metadata: map[string]string{domain.MetaSource: "https://example.com", domain.MetaExtractor: "tavily"},
	}}
	svc := newTestAcquisition(nil, nil, extractor, nil)

	raw, materials, err := svc.Acquire(context.Background(), domain.InputURL, "https://example.com")
	assert.NoError(t, err)
	assert.Equal(t, "page content", raw)
	assert.Len(t, materials, 1)
	assert.Equal(t, "https://example.com", materials[0].Source)
}

func TestAcquireURLExtractionFailure(t *testing.T) {
	extractor := &stubExtractor{err: domain.NewExtractionFailedError(errors.New("down"))}
	svc := newTestAcquisition(nil, nil, extractor, nil)

	_, _, err := svc.Acquire(context.Background(), domain.InputURL, "https://example.com")
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrExtractionFailed, domainErr.Code)
}

func TestAcquireSearch(t *testing.T) {
	search := &mockSearch{
		available: true,
		searchFunc: func(query string, maxResults int) ([]domain.Document, error) {
			assert.Equal(t, 3, maxResults)
			return []domain.Document{
				{Content: "result one"},
				{Content: "result two"},
			}, nil
		},
	}
	svc := newTestAcquisition(nil, nil, nil, search)

	raw, materials, err := svc.Acquire(context.Background(), domain.InputSearch, "quantum entanglement")
	assert.NoError(t, err)
	assert.Equal(t, "result one\n\nresult two", raw)
	assert.Len(t, materials, 1)
	assert.Equal(t, "search:quantum entanglement", materials[0].Source)
	assert.Equal(t, "quantum entanglement", materials[0].Topic)
}

func TestAcquireSearchUnavailable(t *testing.T) {
	svc := newTestAcquisition(nil, nil, nil, &mockSearch{available: false})
	_, _, err := svc.Acquire(context.Background(), domain.InputSearch, "anything")
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrSearchUnavailable, domainErr.Code)

	svc = newTestAcquisition(nil, nil, nil, nil)
	_, _, err = svc.Acquire(context.Background(), domain.InputSearch, "anything")
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrSearchUnavailable, domainErr.Code)
}

func TestAcquireFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	assert.NoError(t, os.WriteFile(path, []byte("file body"), 0o644))

	loader := &mockLoader{loadFunc: func(p string) ([]domain.Document, error) {
		return []domain.Document{
			{Content: "first doc", Metadata: map[string]string{domain.MetaSource: p}},
			{Content: "second doc", Metadata: map[string]string{domain.MetaSource: p}},
		}, nil
	}}
	svc := newTestAcquisition(loader, nil, nil, nil)

	raw, materials, err := svc.Acquire(context.Background(), domain.InputFile, path)
	assert.NoError(t, err)
	assert.Equal(t, "first doc\n\nsecond doc", raw)
	// Chunk order matches source document order.
	assert.Equal(t, "first doc", materials[0].Content)
	assert.Equal(t, "second doc", materials[1].Content)
	assert.Equal(t, path, materials[0].Source)
}

func TestAcquireFileInvalid(t *testing.T) {
	svc := newTestAcquisition(nil, nil, nil, nil)
	var domainErr *domain.DomainError

	t.Run("Missing", func(t *testing.T) {
		_, _, err := svc.Acquire(context.Background(), domain.InputFile, "/does/not/exist.txt")
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrInvalidFile, domainErr.Code)
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "archive.zip")
		assert.NoError(t, os.WriteFile(path, []byte("zip"), 0o644))

		_, _, err := svc.Acquire(context.Background(), domain.InputFile, path)
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrInvalidFile, domainErr.Code)
	})

	t.Run("Directory", func(t *testing.T) {
		_, _, err := svc.Acquire(context.Background(), domain.InputFile, t.TempDir())
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrInvalidFile, domainErr.Code)
	})
}
