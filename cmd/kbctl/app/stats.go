package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			vs, _, cleanup, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := vs.GetStats(ctx, opts.Knowledge.Collection)
			if err != nil {
				return fmt.Errorf("failed to read collection stats: %w", err)
			}

			fmt.Printf("collection: %s\nchunks: %d\n", opts.Knowledge.Collection, count)
			return nil
		},
	}
}
