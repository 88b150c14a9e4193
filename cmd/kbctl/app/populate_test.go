package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpus(t *testing.T) {
	path := writeCorpus(t, `
collection: test_kb
chunks:
  - id: pricing
    metadata:
      category: pricing
      type: fees
    text: "Our pricing: 2% transaction fee."
  - id: safety
    metadata:
      category: safety
    text: "Shares stay in your demat account."
`)

	corpus, err := loadCorpus(path)
	require.NoError(t, err)

	assert.Equal(t, "test_kb", corpus.Collection)
	require.Len(t, corpus.Chunks, 2)
	assert.Equal(t, "pricing", corpus.Chunks[0].ID)
	assert.Equal(t, map[string]string{"category": "pricing", "type": "fees"}, corpus.Chunks[0].Metadata)
	assert.Contains(t, corpus.Chunks[0].Text, "2% transaction fee")
}

func TestLoadCorpus_Empty(t *testing.T) {
	path := writeCorpus(t, "collection: test_kb\nchunks: []\n")

	_, err := loadCorpus(path)
	assert.Error(t, err)
}

func TestLoadCorpus_MissingID(t *testing.T) {
	path := writeCorpus(t, `
chunks:
  - text: "no id here"
`)

	_, err := loadCorpus(path)
	assert.Error(t, err)
}

func TestLoadCorpus_MissingText(t *testing.T) {
	path := writeCorpus(t, `
chunks:
  - id: empty
`)

	_, err := loadCorpus(path)
	assert.Error(t, err)
}

func TestBatchChunks(t *testing.T) {
	chunks := make([]corpusChunk, 10)

	batches := batchChunks(chunks, 4)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 4)
	assert.Len(t, batches[2], 2)

	assert.Len(t, batchChunks(chunks, 0), 10)
	assert.Empty(t, batchChunks(nil, 4))
}
