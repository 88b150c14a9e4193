// Package knowledge provides options for the knowledge retriever.
package knowledge

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains knowledge retriever configuration.
type Options struct {
	// Collection is the vector index collection name.
	Collection string `json:"collection" mapstructure:"collection"`

	// TopK is the number of results requested from similarity search.
	TopK int `json:"top-k" mapstructure:"top-k"`

	// ConfidenceThreshold is the minimum score a snippet needs before it is
	// trusted in a composed answer.
	ConfidenceThreshold float32 `json:"confidence-threshold" mapstructure:"confidence-threshold"`

	// MaxSnippets is the maximum number of snippets joined into an answer.
	MaxSnippets int `json:"max-snippets" mapstructure:"max-snippets"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Collection:          "unlisted_edge_knowledge",
		TopK:                3,
		ConfidenceThreshold: 0.75,
		MaxSnippets:         2,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Collection, options.Join(prefixes...)+"knowledge.collection", o.Collection, "Vector index collection name.")
	fs.IntVar(&o.TopK, options.Join(prefixes...)+"knowledge.top-k", o.TopK, "Number of results from similarity search.")
	fs.Float32Var(&o.ConfidenceThreshold, options.Join(prefixes...)+"knowledge.confidence-threshold", o.ConfidenceThreshold, "Minimum score for a snippet to be used in an answer.")
	fs.IntVar(&o.MaxSnippets, options.Join(prefixes...)+"knowledge.max-snippets", o.MaxSnippets, "Maximum snippets joined into an answer.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Collection == "" {
		errs = append(errs, fmt.Errorf("knowledge.collection is required"))
	}
	if o.TopK < 1 {
		errs = append(errs, fmt.Errorf("knowledge.top-k must be >= 1"))
	}
	if o.ConfidenceThreshold < 0 || o.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("knowledge.confidence-threshold must be within [0,1]"))
	}
	if o.MaxSnippets < 1 {
		errs = append(errs, fmt.Errorf("knowledge.max-snippets must be >= 1"))
	}
	return errs
}
