package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpilot/internal/ai"
	"contentpilot/internal/vectorstore"
)

func newTestWriter(t *testing.T, fake *fakeChat) *RagWriter {
	t.Helper()
	store := vectorstore.NewMemoryStore()
	require.NoError(t, store.Insert(context.Background(), "guide",
		[]string{"guide"}, []string{"retrieved guide text"}, [][]float32{{1, 0}}, nil))
	retriever := NewRetriever(store, &fakeEmbedder{vec: []float32{1, 0}}, ai.EmbeddingConfig{}, 2)
	return NewRagWriter(fake, ai.ChatConfig{}, retriever)
}

func TestWriterGroundedWhenContextFound(t *testing.T) {
	fake := &fakeChat{completions: []string{"the post"}}
	writer := newTestWriter(t, fake)

	got, err := writer.Generate(context.Background(), "write about onboarding",
		[]DocumentRef{{Name: "guide.pdf"}})
	require.NoError(t, err)
	assert.Equal(t, "the post", got)

	require.Len(t, fake.completeCalls, 1)
	prompt := fake.completeCalls[0][0].Content
	assert.Contains(t, prompt, "reference material")
	assert.Contains(t, prompt, "retrieved guide text")
	assert.Contains(t, prompt, "write about onboarding")
}

func TestWriterPlainWithoutDocuments(t *testing.T) {
	fake := &fakeChat{completions: []string{"the post"}}
	writer := newTestWriter(t, fake)

	_, err := writer.Generate(context.Background(), "write about onboarding", nil)
	require.NoError(t, err)

	require.Len(t, fake.completeCalls, 1)
	prompt := fake.completeCalls[0][0].Content
	assert.NotContains(t, prompt, "reference material")
	assert.Contains(t, prompt, "write about onboarding")
}

func TestWriterPlainWhenRetrievalEmpty(t *testing.T) {
	fake := &fakeChat{completions: []string{"the post"}}
	writer := newTestWriter(t, fake)

	// Only a collection that does not exist is selected.
	_, err := writer.Generate(context.Background(), "write about onboarding",
		[]DocumentRef{{Name: "missing.pdf"}})
	require.NoError(t, err)

	require.Len(t, fake.completeCalls, 1)
	assert.NotContains(t, fake.completeCalls[0][0].Content, "reference material")
}

func TestWriterEmptyResponse(t *testing.T) {
	fake := &fakeChat{completions: []string{"  "}}
	writer := newTestWriter(t, fake)

	_, err := writer.Generate(context.Background(), "write something", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
