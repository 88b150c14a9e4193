// Package compliance provides options for the call compliance gate.
package compliance

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains compliance gate configuration.
type Options struct {
	// CallingHoursStart is the inclusive start of the calling window (HH:MM).
	CallingHoursStart string `json:"calling-hours-start" mapstructure:"calling-hours-start"`

	// CallingHoursEnd is the inclusive end of the calling window (HH:MM).
	CallingHoursEnd string `json:"calling-hours-end" mapstructure:"calling-hours-end"`

	// Timezone is the IANA timezone the calling window is evaluated in.
	Timezone string `json:"timezone" mapstructure:"timezone"`

	// ProfanityFilterEnabled toggles the profanity check.
	ProfanityFilterEnabled bool `json:"profanity-filter-enabled" mapstructure:"profanity-filter-enabled"`

	// ProfanityWords is the list of words the profanity check matches.
	ProfanityWords []string `json:"profanity-words" mapstructure:"profanity-words"`

	// DNCFile is the path to the do-not-call list, one number per line.
	// Empty disables the DNC check data source (the check then never matches).
	DNCFile string `json:"dnc-file" mapstructure:"dnc-file"`
}

// NewOptions creates new Options with defaults matching the business rules.
func NewOptions() *Options {
	return &Options{
		CallingHoursStart:      "09:00",
		CallingHoursEnd:        "19:00",
		Timezone:               "Asia/Kolkata",
		ProfanityFilterEnabled: true,
		ProfanityWords:         []string{"fuck", "shit", "damn", "bastard"},
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.CallingHoursStart, options.Join(prefixes...)+"compliance.calling-hours-start", o.CallingHoursStart, "Inclusive start of the calling window (HH:MM).")
	fs.StringVar(&o.CallingHoursEnd, options.Join(prefixes...)+"compliance.calling-hours-end", o.CallingHoursEnd, "Inclusive end of the calling window (HH:MM).")
	fs.StringVar(&o.Timezone, options.Join(prefixes...)+"compliance.timezone", o.Timezone, "IANA timezone for the calling window.")
	fs.BoolVar(&o.ProfanityFilterEnabled, options.Join(prefixes...)+"compliance.profanity-filter-enabled", o.ProfanityFilterEnabled, "Enable the profanity check.")
	fs.StringSliceVar(&o.ProfanityWords, options.Join(prefixes...)+"compliance.profanity-words", o.ProfanityWords, "Words matched by the profanity check.")
	fs.StringVar(&o.DNCFile, options.Join(prefixes...)+"compliance.dnc-file", o.DNCFile, "Path to the do-not-call list file.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if _, err := ParseClock(o.CallingHoursStart); err != nil {
		errs = append(errs, fmt.Errorf("compliance.calling-hours-start: %w", err))
	}
	if _, err := ParseClock(o.CallingHoursEnd); err != nil {
		errs = append(errs, fmt.Errorf("compliance.calling-hours-end: %w", err))
	}
	if _, err := time.LoadLocation(o.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("compliance.timezone: %w", err))
	}
	return errs
}

// ParseClock parses an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
