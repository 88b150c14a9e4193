package store

import (
	"context"
	"fmt"

	"github.com/unlistededge/voicegate/pkg/component/milvus"
)

const (
	maxIDLen   = 64
	maxTextLen = 65535
)

// MilvusStore implements VectorStore backed by Milvus.
type MilvusStore struct {
	client *milvus.Client
}

// NewMilvusStore creates a Milvus-backed vector store.
func NewMilvusStore(client *milvus.Client) *MilvusStore {
	return &MilvusStore{client: client}
}

// CreateCollection creates the Milvus collection if missing.
func (s *MilvusStore) CreateCollection(ctx context.Context, config *CollectionConfig) error {
	schema := &milvus.CollectionSchema{
		Name:        config.Name,
		Description: config.Description,
		Dimension:   config.Dimension,
		MaxIDLen:    maxIDLen,
		MaxTextLen:  maxTextLen,
	}
	return s.client.CreateCollection(ctx, schema)
}

// Upsert writes chunks into Milvus.
func (s *MilvusStore) Upsert(ctx context.Context, collection string, chunks []*KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	entries := make([]milvus.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = milvus.Entry{
			ID:        chunk.ID,
			Text:      chunk.Text,
			Metadata:  chunk.Metadata,
			Embedding: chunk.Embedding,
		}
	}

	if err := s.client.Upsert(ctx, collection, entries); err != nil {
		return fmt.Errorf("failed to upsert into milvus: %w", err)
	}
	return nil
}

// Search performs a vector similarity search.
func (s *MilvusStore) Search(ctx context.Context, collection string, embedding []float32, topK int) ([]*SearchResult, error) {
	results, err := s.client.Search(ctx, collection, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search milvus: %w", err)
	}

	searchResults := make([]*SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = &SearchResult{
			ID:       r.ID,
			Text:     r.Text,
			Metadata: r.Metadata,
			Score:    r.Score,
		}
	}

	return searchResults, nil
}

// Delete removes chunks by ID.
func (s *MilvusStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.client.DeleteByIDs(ctx, collection, ids)
}

// Drop removes the whole collection.
func (s *MilvusStore) Drop(ctx context.Context, collection string) error {
	return s.client.DropCollection(ctx, collection)
}

// GetStats returns the chunk count.
func (s *MilvusStore) GetStats(ctx context.Context, collection string) (int64, error) {
	return s.client.GetCollectionStats(ctx, collection)
}

// Close closes the Milvus connection.
func (s *MilvusStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

var _ VectorStore = (*MilvusStore)(nil)
