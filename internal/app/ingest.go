package app

import (
	"context"
	"log"
	"strings"

	"contentpilot/internal/ai"
	"contentpilot/internal/collection"
	"contentpilot/internal/pkg/pdfextract"
	"contentpilot/internal/vectorstore"
)

// Ingestor turns an extracted document into one embedded chunk inside
// a collection named after the document. Documents are embedded whole;
// there is no sub-document chunking.
type Ingestor struct {
	store    vectorstore.Store
	embedder EmbeddingClient
	embCfg   ai.EmbeddingConfig
}

func NewIngestor(store vectorstore.Store, embedder EmbeddingClient, embCfg ai.EmbeddingConfig) *Ingestor {
	return &Ingestor{store: store, embedder: embedder, embCfg: embCfg}
}

// Ingest embeds extractedText and inserts it into the collection
// derived from displayName, creating the collection if absent.
// Extraction-failure sentinels and empty text are rejected up front.
// Ingest reports success; it never propagates a failure as an error.
func (s *Ingestor) Ingest(ctx context.Context, extractedText, displayName string) bool {
	text := strings.TrimSpace(extractedText)
	if text == "" || pdfextract.IsSentinel(text) {
		return false
	}

	embedding, err := s.embedder.Embed(ctx, s.embCfg, text)
	if err != nil {
		log.Printf("ingest: embedding %q failed: %v", displayName, err)
		return false
	}

	name := collection.Sanitize(displayName)
	if err := s.store.GetOrCreate(ctx, name); err != nil {
		log.Printf("ingest: creating collection %q failed: %v", displayName, err)
		return false
	}
	err = s.store.Insert(ctx, name,
		[]string{name},
		[]string{text},
		[][]float32{embedding},
		[]map[string]string{{"source": displayName}},
	)
	if err != nil {
		log.Printf("ingest: storing %q failed: %v", displayName, err)
		return false
	}
	return true
}

// Drop removes the collection derived from displayName.
func (s *Ingestor) Drop(ctx context.Context, displayName string) error {
	return s.store.Clear(ctx, collection.Sanitize(displayName))
}

// Collections lists the stored collection identifiers.
func (s *Ingestor) Collections(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// DropAll removes every collection.
func (s *Ingestor) DropAll(ctx context.Context) error {
	return s.store.ClearAll(ctx)
}
