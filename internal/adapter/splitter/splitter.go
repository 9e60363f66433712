package splitter

import (
	"studybyte/internal/domain"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

// RecursiveSplitter implements domain.TextSplitter over langchaingo's
// recursive character splitter. Chunk size and overlap are fixed at
// construction; they are system tunables, not per-call parameters.
type RecursiveSplitter struct {
	splitter textsplitter.RecursiveCharacter
}

func NewRecursiveSplitter(chunkSize, chunkOverlap int) *RecursiveSplitter {
	return &RecursiveSplitter{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

// SplitDocuments splits each document into bounded, overlapping chunks,
// preserving document order and metadata.
func (s *RecursiveSplitter) SplitDocuments(docs []domain.Document) ([]domain.Document, error) {
	in := make([]schema.Document, 0, len(docs))
	for _, d := range docs {
		meta := make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			meta[k] = v
		}
		in = append(in, schema.Document{PageContent: d.Content, Metadata: meta})
	}

	chunks, err := textsplitter.SplitDocuments(s.splitter, in)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Document, 0, len(chunks))
	for _, c := range chunks {
		meta := make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			if str, ok := v.(string); ok {
				meta[k] = str
			}
		}
		out = append(out, domain.Document{Content: c.PageContent, Metadata: meta})
	}
	return out, nil
}

var _ domain.TextSplitter = (*RecursiveSplitter)(nil)
