package biz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
	"github.com/unlistededge/voicegate/internal/gateway/store"
	knowledgeopts "github.com/unlistededge/voicegate/pkg/options/knowledge"
)

// fakeEmbedder maps known queries to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) EmbedSingle(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.vectors[text]
	if !ok {
		return []float32{0, 0, 1}, nil
	}
	return v, nil
}

func newRetriever(t *testing.T, embedder biz.Embedder) (*biz.Retriever, *store.MemoryStore) {
	t.Helper()

	opts := knowledgeopts.NewOptions()
	opts.Collection = "test"

	vs := store.NewMemoryStore()
	err := vs.CreateCollection(context.Background(), &store.CollectionConfig{Name: "test", Dimension: 3})
	require.NoError(t, err)

	return biz.NewRetriever(embedder, vs, opts), vs
}

func TestRetriever_SearchReturnsRankedResults(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"what are your fees": {1, 0, 0},
	}}
	r, vs := newRetriever(t, embedder)

	err := vs.Upsert(context.Background(), "test", []*store.KnowledgeChunk{
		{ID: "pricing", Text: "Our pricing: 2% transaction fee.", Embedding: []float32{1, 0, 0}},
		{ID: "safety", Text: "Your shares stay in your demat account.", Embedding: []float32{0, 1, 0}},
	})
	require.NoError(t, err)

	results := r.Search(context.Background(), "what are your fees")

	require.NotEmpty(t, results)
	assert.Equal(t, "pricing", results[0].ID)
}

func TestRetriever_SearchEmptyQuery(t *testing.T) {
	r, _ := newRetriever(t, &fakeEmbedder{})

	assert.Empty(t, r.Search(context.Background(), "   "))
}

func TestRetriever_SearchEmbedFailureReturnsEmpty(t *testing.T) {
	r, _ := newRetriever(t, &fakeEmbedder{err: errors.New("embedding service down")})

	assert.Empty(t, r.Search(context.Background(), "what are your fees"))
}

func TestComposeAnswer_NoResults(t *testing.T) {
	r, _ := newRetriever(t, &fakeEmbedder{})

	answer := r.ComposeAnswer(nil)

	assert.Contains(t, answer.Text, "don't have specific information")
	assert.Zero(t, answer.Confidence)
	assert.Zero(t, answer.SourcesUsed)
}

func TestComposeAnswer_AllBelowThreshold(t *testing.T) {
	r, _ := newRetriever(t, &fakeEmbedder{})

	answer := r.ComposeAnswer([]*store.SearchResult{
		{Text: "vaguely related", Score: 0.5},
		{Text: "also vague", Score: 0.4},
	})

	assert.Contains(t, answer.Text, "speaking with our advisor")
	assert.Zero(t, answer.SourcesUsed)
}

func TestComposeAnswer_JoinsTopTwoSnippets(t *testing.T) {
	r, _ := newRetriever(t, &fakeEmbedder{})

	answer := r.ComposeAnswer([]*store.SearchResult{
		{Text: "First fact.", Score: 0.95},
		{Text: "Second fact.", Score: 0.90},
		{Text: "Third fact.", Score: 0.85},
	})

	assert.Equal(t, "First fact. Second fact.", answer.Text)
	assert.Equal(t, float32(0.95), answer.Confidence)
	assert.Equal(t, 3, answer.SourcesUsed)
}

func TestComposeAnswer_ThresholdIsExclusive(t *testing.T) {
	r, _ := newRetriever(t, &fakeEmbedder{})

	answer := r.ComposeAnswer([]*store.SearchResult{
		{Text: "exactly at threshold", Score: 0.75},
	})

	assert.Contains(t, answer.Text, "speaking with our advisor")
}

func TestUnavailableAnswer(t *testing.T) {
	assert.Contains(t, biz.UnavailableAnswer().Text, "having trouble")
}
