package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unlistededge/voicegate/internal/gateway/store"
)

// corpusFile is the on-disk knowledge corpus.
type corpusFile struct {
	Collection string        `yaml:"collection"`
	Chunks     []corpusChunk `yaml:"chunks"`
}

// corpusChunk is one knowledge entry.
type corpusChunk struct {
	ID       string            `yaml:"id"`
	Metadata map[string]string `yaml:"metadata"`
	Text     string            `yaml:"text"`
}

func newPopulateCommand(opts *options) *cobra.Command {
	var (
		file      string
		batchSize int
		workers   int
		drop      bool
	)

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Embed a knowledge corpus and load it into the vector store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPopulate(cmd.Context(), opts, file, batchSize, workers, drop)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "configs/knowledge.yaml", "Path to the knowledge corpus file")
	cmd.Flags().IntVar(&batchSize, "batch-size", 8, "Number of chunks embedded per request")
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of concurrent embedding workers")
	cmd.Flags().BoolVar(&drop, "drop", false, "Drop and recreate the collection before loading")

	return cmd
}

func runPopulate(ctx context.Context, opts *options, file string, batchSize, workers int, drop bool) error {
	corpus, err := loadCorpus(file)
	if err != nil {
		return err
	}

	collection := corpus.Collection
	if collection == "" {
		collection = opts.Knowledge.Collection
	}

	vs, embedder, cleanup, err := opts.connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if drop {
		if milvusStore, ok := vs.(*store.MilvusStore); ok {
			if err := milvusStore.Drop(ctx, collection); err != nil {
				return fmt.Errorf("failed to drop collection: %w", err)
			}
			logger.Infow("Dropped collection", "collection", collection)
		}
	}

	if err := vs.CreateCollection(ctx, &store.CollectionConfig{
		Name:        collection,
		Description: "Unlisted Edge knowledge base",
		Dimension:   opts.Embedding.Dimension,
	}); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	batches := batchChunks(corpus.Chunks, batchSize)
	logger.Infow("Embedding corpus",
		"file", file,
		"chunks", len(corpus.Chunks),
		"batches", len(batches),
		"workers", workers,
	)

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		embedded []*store.KnowledgeChunk
	)

	for _, batch := range batches {
		batch := batch
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Text
			}

			vectors, err := embedder.Embed(ctx, texts)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to embed batch: %w", err)
				}
				mu.Unlock()
				return
			}

			chunks := make([]*store.KnowledgeChunk, len(batch))
			for i, c := range batch {
				chunks[i] = &store.KnowledgeChunk{
					ID:        c.ID,
					Text:      c.Text,
					Metadata:  c.Metadata,
					Embedding: vectors[i],
				}
			}

			mu.Lock()
			embedded = append(embedded, chunks...)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			return fmt.Errorf("failed to submit embedding task: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	if err := vs.Upsert(ctx, collection, embedded); err != nil {
		return fmt.Errorf("failed to load chunks: %w", err)
	}

	count, err := vs.GetStats(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to read collection stats: %w", err)
	}

	logger.Infow("Knowledge base populated", "collection", collection, "chunks", count)
	fmt.Printf("Loaded %d chunks into %s (%d total)\n", len(embedded), collection, count)
	return nil
}

func loadCorpus(path string) (*corpusFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var corpus corpusFile
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	if len(corpus.Chunks) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no chunks", path)
	}
	for i, c := range corpus.Chunks {
		if c.ID == "" {
			return nil, fmt.Errorf("chunk %d has no id", i)
		}
		if c.Text == "" {
			return nil, fmt.Errorf("chunk %q has no text", c.ID)
		}
	}
	return &corpus, nil
}

func batchChunks(chunks []corpusChunk, size int) [][]corpusChunk {
	if size <= 0 {
		size = 1
	}
	var batches [][]corpusChunk
	for start := 0; start < len(chunks); start += size {
		end := start + size
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[start:end])
	}
	return batches
}
