package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memChunk struct {
	id        string
	text      string
	embedding []float32
	metadata  map[string]string
}

// MemoryStore is the in-process fallback used when no SQLite engine
// mode could be opened. Data lives only for the process lifetime;
// semantics otherwise match the engine-backed store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]memChunk
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]memChunk)}
}

func (s *MemoryStore) GetOrCreate(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; !ok {
		s.collections[name] = nil
	}
	return nil
}

func (s *MemoryStore) Insert(_ context.Context, name string, ids, texts []string, embeddings [][]float32, metadatas []map[string]string) error {
	if len(ids) != len(texts) || len(ids) != len(embeddings) {
		return fmt.Errorf("ids, texts and embeddings length mismatch")
	}
	if metadatas != nil && len(metadatas) != len(ids) {
		return fmt.Errorf("metadatas length mismatch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.collections[name]
	for i := range ids {
		// Same id replaces the prior entry: drop, then append so the
		// newest version takes the latest insertion-order slot.
		for j := range entries {
			if entries[j].id == ids[i] {
				entries = append(entries[:j], entries[j+1:]...)
				break
			}
		}
		var meta map[string]string
		if metadatas != nil {
			meta = metadatas[i]
		}
		entries = append(entries, memChunk{
			id:        ids[i],
			text:      texts[i],
			embedding: embeddings[i],
			metadata:  meta,
		})
	}
	s.collections[name] = entries
	return nil
}

func (s *MemoryStore) Query(_ context.Context, name string, embedding []float32, topK int) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.collections[name]
	if !ok {
		return nil, ErrNotFound
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		results = append(results, Result{
			ID:       e.id,
			Text:     e.text,
			Distance: CosineDistance(embedding, e.embedding),
		})
	}
	// Stable keeps insertion order among equal distances.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Clear(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, name)
	return nil
}

func (s *MemoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string][]memChunk)
	return nil
}

func (s *MemoryStore) Mode() string { return ModeMemory }

func (s *MemoryStore) Close() error { return nil }
