package store

import (
	"context"
	"fmt"
	"maps"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-memory VectorStore using brute-force cosine
// similarity. It backs tests and local development without Milvus.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*KnowledgeChunk
}

// NewMemoryStore creates an empty in-memory vector store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]*KnowledgeChunk),
	}
}

// CreateCollection creates the collection if it does not exist.
func (s *MemoryStore) CreateCollection(_ context.Context, config *CollectionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[config.Name]; !ok {
		s.collections[config.Name] = make(map[string]*KnowledgeChunk)
	}
	return nil
}

// Upsert writes chunks, replacing chunks with the same ID.
func (s *MemoryStore) Upsert(_ context.Context, collection string, chunks []*KnowledgeChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]*KnowledgeChunk)
		s.collections[collection] = coll
	}

	for _, chunk := range chunks {
		c := *chunk
		c.Metadata = maps.Clone(chunk.Metadata)
		coll[chunk.ID] = &c
	}
	return nil
}

// Search returns the topK chunks by cosine similarity, highest first.
// Ties break by chunk ID to keep ordering stable.
func (s *MemoryStore) Search(_ context.Context, collection string, embedding []float32, topK int) ([]*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q not found", collection)
	}

	results := make([]*SearchResult, 0, len(coll))
	for _, chunk := range coll {
		results = append(results, &SearchResult{
			ID:       chunk.ID,
			Text:     chunk.Text,
			Metadata: chunk.Metadata,
			Score:    cosineSimilarity(embedding, chunk.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Delete removes chunks by ID.
func (s *MemoryStore) Delete(_ context.Context, collection string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		return nil
	}
	for _, id := range ids {
		delete(coll, id)
	}
	return nil
}

// GetStats returns the chunk count.
func (s *MemoryStore) GetStats(_ context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.collections[collection])), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

var _ VectorStore = (*MemoryStore)(nil)
