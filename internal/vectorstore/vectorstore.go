// Package vectorstore defines the collection-of-embeddings contract
// shared by the persistent SQLite engine and the in-process fallback.
// Callers never branch on which implementation is active.
package vectorstore

import (
	"context"
	"errors"
	"math"
)

// ErrNotFound is returned when an operation targets a collection that
// was never created (or was cleared).
var ErrNotFound = errors.New("collection not found")

// Modes reported by Store.Mode.
const (
	ModeSQLite       = "sqlite"
	ModeSQLiteMemory = "sqlite-memory"
	ModeMemory       = "memory"
)

const defaultTopK = 5

// Result is one retrieved chunk, ranked by ascending Distance
// (1 - cosine similarity; ties keep insertion order).
type Result struct {
	ID       string
	Text     string
	Distance float64
}

// Store is a named set of collections, each holding (id, text,
// embedding, metadata) chunks queryable by nearest neighbor.
//
// Insert with an id already present in the collection replaces the
// prior entry. Query on an existing empty collection returns an empty
// slice, not an error. Inserts on different collections never
// interfere; an insert followed by a query on the same collection is
// linearizable.
type Store interface {
	// GetOrCreate ensures the named collection exists.
	GetOrCreate(ctx context.Context, name string) error

	// Insert adds chunks to the collection, creating it if absent.
	// ids, texts and embeddings must have equal length; metadatas may
	// be nil or equal length.
	Insert(ctx context.Context, name string, ids, texts []string, embeddings [][]float32, metadatas []map[string]string) error

	// Query returns the topK nearest chunks to the embedding.
	// Returns ErrNotFound if the collection does not exist.
	Query(ctx context.Context, name string, embedding []float32, topK int) ([]Result, error)

	// List returns the names of all collections.
	List(ctx context.Context) ([]string, error)

	// Clear removes one collection and its chunks. Clearing a missing
	// collection is not an error.
	Clear(ctx context.Context, name string) error

	// ClearAll removes every collection.
	ClearAll(ctx context.Context) error

	// Mode identifies the active implementation for diagnostics.
	Mode() string

	Close() error
}

// CosineDistance returns 1 - cosine similarity. Mismatched or
// zero-magnitude vectors score the maximum distance of 1.
func CosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
