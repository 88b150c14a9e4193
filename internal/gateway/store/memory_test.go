package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlistededge/voicegate/internal/gateway/store"
)

func newTestStore(t *testing.T) *store.MemoryStore {
	t.Helper()

	s := store.NewMemoryStore()
	err := s.CreateCollection(context.Background(), &store.CollectionConfig{
		Name:      "test",
		Dimension: 3,
	})
	require.NoError(t, err)
	return s
}

func TestMemoryStore_UpsertAndSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Upsert(ctx, "test", []*store.KnowledgeChunk{
		{ID: "a", Text: "pricing details", Metadata: map[string]string{"category": "pricing"}, Embedding: []float32{1, 0, 0}},
		{ID: "b", Text: "safety details", Metadata: map[string]string{"category": "safety"}, Embedding: []float32{0, 1, 0}},
		{ID: "c", Text: "process details", Metadata: map[string]string{"category": "process"}, Embedding: []float32{0.9, 0.1, 0}},
	})
	require.NoError(t, err)

	results, err := s.Search(ctx, "test", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "c", results[1].ID)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.InDelta(t, 1.0, float64(results[0].Score), 1e-6)
	assert.Equal(t, map[string]string{"category": "pricing"}, results[0].Metadata)
}

func TestMemoryStore_UpsertReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Upsert(ctx, "test", []*store.KnowledgeChunk{
		{ID: "a", Text: "old text", Embedding: []float32{1, 0, 0}},
	})
	require.NoError(t, err)

	err = s.Upsert(ctx, "test", []*store.KnowledgeChunk{
		{ID: "a", Text: "new text", Embedding: []float32{1, 0, 0}},
	})
	require.NoError(t, err)

	count, err := s.GetStats(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	results, err := s.Search(ctx, "test", []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new text", results[0].Text)
}

func TestMemoryStore_SearchUnknownCollection(t *testing.T) {
	s := store.NewMemoryStore()

	_, err := s.Search(context.Background(), "missing", []float32{1, 0, 0}, 3)
	assert.Error(t, err)
}

func TestMemoryStore_SearchTieBreaksByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Upsert(ctx, "test", []*store.KnowledgeChunk{
		{ID: "b", Embedding: []float32{1, 0, 0}},
		{ID: "a", Embedding: []float32{1, 0, 0}},
	})
	require.NoError(t, err)

	results, err := s.Search(ctx, "test", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Upsert(ctx, "test", []*store.KnowledgeChunk{
		{ID: "a", Embedding: []float32{1, 0, 0}},
		{ID: "b", Embedding: []float32{0, 1, 0}},
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "test", []string{"a"}))

	count, err := s.GetStats(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
