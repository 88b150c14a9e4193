// Package signature provides options for webhook signature verification.
package signature

import (
	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// DefaultHeader is the header the voice platform sends its signature in.
const DefaultHeader = "X-Bolna-Signature"

// Options contains webhook signature configuration.
type Options struct {
	// Secret is the shared webhook secret. Empty means verification is
	// skipped (permissive mode) and the gateway logs a warning.
	Secret string `json:"-" mapstructure:"secret"`

	// Header is the request header carrying the hex HMAC digest.
	Header string `json:"header" mapstructure:"header"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Header: DefaultHeader,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Secret, options.Join(prefixes...)+"signature.secret", o.Secret, "Shared webhook secret; empty skips verification.")
	fs.StringVar(&o.Header, options.Join(prefixes...)+"signature.header", o.Header, "Header carrying the webhook signature.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	return nil
}
