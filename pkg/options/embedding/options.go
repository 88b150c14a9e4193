// Package embedding provides options for the embedding provider.
package embedding

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains embedding provider configuration.
type Options struct {
	// BaseURL is the API base address of the OpenAI-compatible endpoint.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// APIKey authenticates requests to the provider.
	APIKey string `json:"-" mapstructure:"api-key"`

	// Model is the embedding model name.
	Model string `json:"model" mapstructure:"model"`

	// Dimension is the embedding vector dimension produced by Model.
	Dimension int `json:"dimension" mapstructure:"dimension"`

	// Timeout bounds a single embedding request.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on transport errors.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		BaseURL:    "https://api.openai.com",
		Model:      "text-embedding-3-small",
		Dimension:  1536,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, options.Join(prefixes...)+"embedding.base-url", o.BaseURL, "Embedding API base URL.")
	fs.StringVar(&o.APIKey, options.Join(prefixes...)+"embedding.api-key", o.APIKey, "Embedding API key.")
	fs.StringVar(&o.Model, options.Join(prefixes...)+"embedding.model", o.Model, "Embedding model name.")
	fs.IntVar(&o.Dimension, options.Join(prefixes...)+"embedding.dimension", o.Dimension, "Embedding vector dimension.")
	fs.DurationVar(&o.Timeout, options.Join(prefixes...)+"embedding.timeout", o.Timeout, "Embedding request timeout.")
	fs.IntVar(&o.MaxRetries, options.Join(prefixes...)+"embedding.max-retries", o.MaxRetries, "Embedding max retries.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.BaseURL == "" {
		errs = append(errs, fmt.Errorf("embedding.base-url is required"))
	}
	if o.Model == "" {
		errs = append(errs, fmt.Errorf("embedding.model is required"))
	}
	if o.Dimension <= 0 {
		errs = append(errs, fmt.Errorf("embedding.dimension must be positive"))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("embedding.timeout must be positive"))
	}
	return errs
}
