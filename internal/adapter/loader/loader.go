package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studybyte/internal/domain"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// DocumentLoader implements domain.FileLoader on top of the langchaingo
// document loaders, keyed by file extension.
type DocumentLoader struct{}

func NewDocumentLoader() *DocumentLoader {
	return &DocumentLoader{}
}

// SupportedExtensions lists the closed set of loadable file types.
func (l *DocumentLoader) SupportedExtensions() []string {
	return []string{".pdf", ".txt", ".md", ".html"}
}

// Load reads the file at path and returns its documents. Unknown extensions
// fail with UnsupportedFileType.
func (l *DocumentLoader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewInvalidFileError(path)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	var docs []schema.Document

	switch ext {
	case ".pdf":
		info, statErr := f.Stat()
		if statErr != nil {
			return nil, domain.NewInvalidFileError(path)
		}
		docs, err = documentloaders.NewPDF(f, info.Size()).Load(ctx)
	case ".txt", ".md":
		docs, err = documentloaders.NewText(f).Load(ctx)
	case ".html":
		docs, err = documentloaders.NewHTML(f).Load(ctx)
	default:
		return nil, domain.NewUnsupportedFileTypeError(ext)
	}
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load %s", path), err)
	}

	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Document{
			Content:  d.PageContent,
			Metadata: map[string]string{domain.MetaSource: path},
		})
	}
	return out, nil
}

var _ domain.FileLoader = (*DocumentLoader)(nil)
