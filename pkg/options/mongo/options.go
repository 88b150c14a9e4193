// Package mongo provides MongoDB options for the lead archive.
package mongo

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains MongoDB configuration. An empty URI disables the lead
// archive; leads are then only forwarded downstream.
type Options struct {
	// URI is the MongoDB connection string (mongodb://...).
	URI string `json:"uri" mapstructure:"uri"`

	// Database is the database name.
	Database string `json:"database" mapstructure:"database"`

	// Collection is the collection leads are written to.
	Collection string `json:"collection" mapstructure:"collection"`

	// ConnectTimeout bounds the initial connection.
	ConnectTimeout time.Duration `json:"connect-timeout" mapstructure:"connect-timeout"`

	// OperationTimeout bounds a single write.
	OperationTimeout time.Duration `json:"operation-timeout" mapstructure:"operation-timeout"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Database:         "unlisted_edge_calls",
		Collection:       "leads",
		ConnectTimeout:   10 * time.Second,
		OperationTimeout: 5 * time.Second,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.URI, options.Join(prefixes...)+"mongo.uri", o.URI, "MongoDB connection URI; empty disables the lead archive.")
	fs.StringVar(&o.Database, options.Join(prefixes...)+"mongo.database", o.Database, "MongoDB database name.")
	fs.StringVar(&o.Collection, options.Join(prefixes...)+"mongo.collection", o.Collection, "MongoDB collection for leads.")
	fs.DurationVar(&o.ConnectTimeout, options.Join(prefixes...)+"mongo.connect-timeout", o.ConnectTimeout, "MongoDB connect timeout.")
	fs.DurationVar(&o.OperationTimeout, options.Join(prefixes...)+"mongo.operation-timeout", o.OperationTimeout, "MongoDB write timeout.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil || o.URI == "" {
		return nil
	}

	var errs []error
	if o.Database == "" {
		errs = append(errs, fmt.Errorf("mongo.database is required"))
	}
	if o.Collection == "" {
		errs = append(errs, fmt.Errorf("mongo.collection is required"))
	}
	return errs
}

// Enabled reports whether a lead archive is configured.
func (o *Options) Enabled() bool {
	return o != nil && o.URI != ""
}
