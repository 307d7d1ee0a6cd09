package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"contentpilot/internal/ai"
	"contentpilot/internal/collection"
	"contentpilot/internal/vectorstore"
)

// Retriever fans a query out over the selected document collections
// and merges the hits into one context block.
type Retriever struct {
	store    vectorstore.Store
	embedder EmbeddingClient
	embCfg   ai.EmbeddingConfig
	topK     int
}

func NewRetriever(store vectorstore.Store, embedder EmbeddingClient, embCfg ai.EmbeddingConfig, topK int) *Retriever {
	if topK <= 0 {
		topK = 2
	}
	return &Retriever{store: store, embedder: embedder, embCfg: embCfg, topK: topK}
}

// Retrieve queries each selected collection for the topK nearest
// chunks and concatenates their texts, selection order first and rank
// order within each collection, separated by blank lines. It returns
// "" when the query embedding could not be computed or no collection
// yielded anything; callers fall back to no-context generation.
func (r *Retriever) Retrieve(ctx context.Context, query string, refs []DocumentRef) string {
	if len(refs) == 0 {
		return ""
	}

	queryEmbedding, err := r.embedder.Embed(ctx, r.embCfg, query)
	if err != nil {
		log.Printf("retriever: query embedding failed: %v", err)
		return ""
	}

	var texts []string
	for _, ref := range refs {
		name := collection.Sanitize(ref.Name)
		results, err := r.store.Query(ctx, name, queryEmbedding, r.topK)
		if err != nil {
			// A missing collection contributes nothing; it must not
			// fail the whole request.
			if !errors.Is(err, vectorstore.ErrNotFound) {
				log.Printf("retriever: query on %q failed: %v", name, err)
			}
			continue
		}
		for _, res := range results {
			texts = append(texts, res.Text)
		}
	}

	return strings.Join(texts, "\n\n")
}
