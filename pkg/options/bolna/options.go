// Package bolna provides options for the Bolna voice platform client.
package bolna

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains Bolna API client configuration.
type Options struct {
	// APIURL is the Bolna API base address.
	APIURL string `json:"api-url" mapstructure:"api-url"`

	// APIKey authenticates requests to the Bolna API.
	APIKey string `json:"-" mapstructure:"api-key"`

	// AgentID is the conversation agent used for outbound calls.
	AgentID string `json:"agent-id" mapstructure:"agent-id"`

	// PhoneNumber is the caller number presented on outbound calls.
	PhoneNumber string `json:"phone-number" mapstructure:"phone-number"`

	// Timeout bounds a single API request.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		APIURL:  "https://api.bolna.dev",
		Timeout: 30 * time.Second,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.APIURL, options.Join(prefixes...)+"bolna.api-url", o.APIURL, "Bolna API base URL.")
	fs.StringVar(&o.APIKey, options.Join(prefixes...)+"bolna.api-key", o.APIKey, "Bolna API key.")
	fs.StringVar(&o.AgentID, options.Join(prefixes...)+"bolna.agent-id", o.AgentID, "Bolna agent ID for outbound calls.")
	fs.StringVar(&o.PhoneNumber, options.Join(prefixes...)+"bolna.phone-number", o.PhoneNumber, "Caller number for outbound calls.")
	fs.DurationVar(&o.Timeout, options.Join(prefixes...)+"bolna.timeout", o.Timeout, "Bolna API request timeout.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.APIURL == "" {
		errs = append(errs, fmt.Errorf("bolna.api-url is required"))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("bolna.timeout must be positive"))
	}
	return errs
}

// Configured reports whether the client has credentials to reach the API.
func (o *Options) Configured() bool {
	return o != nil && o.APIKey != ""
}
