package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func formatMetadata(meta map[string]string) string {
	if len(meta) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+meta[k])
	}
	return strings.Join(parts, " ")
}

func newSearchCommand(opts *options) *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a semantic search against the knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")

			vs, embedder, cleanup, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			embedding, err := embedder.EmbedSingle(ctx, query)
			if err != nil {
				return fmt.Errorf("failed to embed query: %w", err)
			}

			results, err := vs.Search(ctx, opts.Knowledge.Collection, embedding, topK)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if len(results) == 0 {
				fmt.Println("No results.")
				return nil
			}

			for i, r := range results {
				fmt.Printf("%d. [%.4f] %s (%s)\n   %s\n", i+1, r.Score, r.ID, formatMetadata(r.Metadata), r.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topK, "top-k", 3, "Number of results to return")
	return cmd
}
