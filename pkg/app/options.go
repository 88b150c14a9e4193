package app

import (
	"github.com/spf13/pflag"
)

// CliOptions abstracts options for the application command line.
type CliOptions interface {
	// AddFlags adds flags to the flag set.
	AddFlags(fs *pflag.FlagSet)
	// Validate validates the options.
	Validate() error
	// Complete fills in any fields not set that are required to have valid data.
	Complete() error
}
