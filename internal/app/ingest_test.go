package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpilot/internal/ai"
	"contentpilot/internal/vectorstore"
)

func TestIngestStoresSingleChunk(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	embedder := &fakeEmbedder{vec: []float32{0.5, 0.5}}
	ingestor := NewIngestor(store, embedder, ai.EmbeddingConfig{})

	ok := ingestor.Ingest(context.Background(), "A long enough document body.", "My Report.pdf")
	require.True(t, ok)

	results, err := store.Query(context.Background(), "my_report", []float32{0.5, 0.5}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "my_report", results[0].ID)
	assert.Equal(t, "A long enough document body.", results[0].Text)
}

func TestIngestReplacesOnReupload(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ingestor := NewIngestor(store, &fakeEmbedder{vec: []float32{1, 0}}, ai.EmbeddingConfig{})

	require.True(t, ingestor.Ingest(context.Background(), "first version text", "report.pdf"))
	require.True(t, ingestor.Ingest(context.Background(), "second version text", "report.pdf"))

	results, err := store.Query(context.Background(), "report", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "second version text", results[0].Text)
}

func TestIngestRejectsUnusableText(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	embedder := &fakeEmbedder{vec: []float32{1, 0}}
	ingestor := NewIngestor(store, embedder, ai.EmbeddingConfig{})

	assert.False(t, ingestor.Ingest(context.Background(), "", "a.pdf"))
	assert.False(t, ingestor.Ingest(context.Background(), "   ", "a.pdf"))
	assert.False(t, ingestor.Ingest(context.Background(), "No text content found in PDF", "a.pdf"))
	assert.False(t, ingestor.Ingest(context.Background(), "No meaningful text content found in PDF", "a.pdf"))
	assert.False(t, ingestor.Ingest(context.Background(), "Error extracting content from PDF: bad xref", "a.pdf"))
	assert.Empty(t, embedder.calls)
}

func TestIngestEmbeddingFailure(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ingestor := NewIngestor(store, &fakeEmbedder{err: errors.New("quota")}, ai.EmbeddingConfig{})

	assert.False(t, ingestor.Ingest(context.Background(), "some document text", "a.pdf"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDropAndCollections(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ingestor := NewIngestor(store, &fakeEmbedder{vec: []float32{1, 0}}, ai.EmbeddingConfig{})

	require.True(t, ingestor.Ingest(context.Background(), "alpha document text", "Alpha.pdf"))
	require.True(t, ingestor.Ingest(context.Background(), "beta document text", "Beta.pdf"))

	names, err := ingestor.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	require.NoError(t, ingestor.Drop(context.Background(), "Alpha.pdf"))
	names, err = ingestor.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)

	require.NoError(t, ingestor.DropAll(context.Background()))
	names, err = ingestor.Collections(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
