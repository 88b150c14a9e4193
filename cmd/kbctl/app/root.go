// Package app implements the kbctl command tree.
package app

import (
	"context"
	"fmt"

	"github.com/kart-io/version"
	"github.com/spf13/cobra"

	"github.com/unlistededge/voicegate/internal/gateway/store"
	"github.com/unlistededge/voicegate/pkg/component/milvus"
	"github.com/unlistededge/voicegate/pkg/component/openai"
	embeddingopts "github.com/unlistededge/voicegate/pkg/options/embedding"
	knowledgeopts "github.com/unlistededge/voicegate/pkg/options/knowledge"
	logopts "github.com/unlistededge/voicegate/pkg/options/logger"
	milvusopts "github.com/unlistededge/voicegate/pkg/options/milvus"
)

// options carries the shared configuration for all subcommands.
type options struct {
	Log       *logopts.Options
	Milvus    *milvusopts.Options
	Embedding *embeddingopts.Options
	Knowledge *knowledgeopts.Options
}

// NewKBCtlCommand builds the root kbctl command.
func NewKBCtlCommand() *cobra.Command {
	opts := &options{
		Log:       logopts.NewOptions(),
		Milvus:    milvusopts.NewOptions(),
		Embedding: embeddingopts.NewOptions(),
		Knowledge: knowledgeopts.NewOptions(),
	}

	cmd := &cobra.Command{
		Use:   "kbctl",
		Short: "Manage the voice gateway knowledge base",
		Long: `kbctl manages the vector knowledge base behind the voice gateway.

It embeds knowledge chunks with the configured embedding provider and
stores them in Milvus for semantic search during calls.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			version.PrintAndExitIfRequested()
			if err := opts.Log.Init(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
	}

	fs := cmd.PersistentFlags()
	opts.Log.AddFlags(fs)
	opts.Milvus.AddFlags(fs)
	opts.Embedding.AddFlags(fs)
	opts.Knowledge.AddFlags(fs)
	version.AddFlags(fs)

	cmd.AddCommand(
		newPopulateCommand(opts),
		newSearchCommand(opts),
		newStatsCommand(opts),
	)

	return cmd
}

// connect opens the Milvus-backed vector store and the embedder.
func (o *options) connect(ctx context.Context) (store.VectorStore, *openai.Client, func(), error) {
	if errs := o.Milvus.Validate(); len(errs) > 0 {
		return nil, nil, nil, errs[0]
	}
	if errs := o.Embedding.Validate(); len(errs) > 0 {
		return nil, nil, nil, errs[0]
	}

	client, err := milvus.New(o.Milvus)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to milvus: %w", err)
	}

	vs := store.NewMilvusStore(client)
	cleanup := func() { _ = vs.Close(ctx) }
	return vs, openai.New(o.Embedding), cleanup, nil
}
