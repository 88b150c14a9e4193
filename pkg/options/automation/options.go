// Package automation provides options for the downstream automation webhooks.
package automation

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains automation webhook configuration. Empty URLs disable the
// corresponding forward; the gateway then only acknowledges the event.
type Options struct {
	// CallEndedURL receives the reshaped call record after a call finishes.
	CallEndedURL string `json:"call-ended-url" mapstructure:"call-ended-url"`

	// LeadSavedURL receives normalized lead records.
	LeadSavedURL string `json:"lead-saved-url" mapstructure:"lead-saved-url"`

	// APIKey is sent as x-api-key when set.
	APIKey string `json:"-" mapstructure:"api-key"`

	// Timeout bounds a single forward.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Timeout: 10 * time.Second,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.CallEndedURL, options.Join(prefixes...)+"automation.call-ended-url", o.CallEndedURL, "Webhook URL receiving call-ended records.")
	fs.StringVar(&o.LeadSavedURL, options.Join(prefixes...)+"automation.lead-saved-url", o.LeadSavedURL, "Webhook URL receiving saved leads.")
	fs.StringVar(&o.APIKey, options.Join(prefixes...)+"automation.api-key", o.APIKey, "API key sent with forwarded payloads.")
	fs.DurationVar(&o.Timeout, options.Join(prefixes...)+"automation.timeout", o.Timeout, "Forwarding request timeout.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("automation.timeout must be positive"))
	}
	return errs
}
