package store

import (
	"context"
)

// KnowledgeChunk is a knowledge base entry.
type KnowledgeChunk struct {
	// ID is the caller-assigned chunk ID.
	ID string
	// Text is the chunk content.
	Text string
	// Metadata carries descriptive labels, e.g. category and type.
	Metadata map[string]string
	// Embedding is the chunk's vector representation.
	Embedding []float32
}

// SearchResult is a single similarity search hit.
type SearchResult struct {
	// ID is the chunk ID.
	ID string
	// Text is the chunk content.
	Text string
	// Metadata carries the chunk's labels.
	Metadata map[string]string
	// Score is the cosine similarity score.
	Score float32
}

// CollectionConfig describes a knowledge collection.
type CollectionConfig struct {
	// Name is the collection name.
	Name string
	// Description is the collection description.
	Description string
	// Dimension is the embedding dimension.
	Dimension int
}

// VectorStore defines the knowledge base storage interface.
type VectorStore interface {
	// CreateCollection creates the collection if it does not exist.
	CreateCollection(ctx context.Context, config *CollectionConfig) error

	// Upsert writes chunks, replacing chunks with the same ID.
	Upsert(ctx context.Context, collection string, chunks []*KnowledgeChunk) error

	// Search performs a vector similarity search.
	Search(ctx context.Context, collection string, embedding []float32, topK int) ([]*SearchResult, error)

	// Delete removes chunks by ID.
	Delete(ctx context.Context, collection string, ids []string) error

	// GetStats returns the number of chunks in the collection.
	GetStats(ctx context.Context, collection string) (int64, error)

	// Close closes the connection.
	Close(ctx context.Context) error
}
