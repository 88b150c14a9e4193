// Package dedup provides options for webhook delivery deduplication.
package dedup

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains dedup store configuration. Disabled by default: the
// upstream platform may redeliver webhooks and the historical behavior is to
// process every delivery.
type Options struct {
	// Enabled toggles redis-backed delivery deduplication.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTL is how long a delivery key is remembered.
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`

	// KeyPrefix namespaces dedup keys in redis.
	KeyPrefix string `json:"key-prefix" mapstructure:"key-prefix"`

	// Redis connection settings.
	Addr         string `json:"addr" mapstructure:"addr"`
	Password     string `json:"-" mapstructure:"password"`
	Database     int    `json:"database" mapstructure:"database"`
	MaxRetries   int    `json:"max-retries" mapstructure:"max-retries"`
	PoolSize     int    `json:"pool-size" mapstructure:"pool-size"`
	MinIdleConns int    `json:"min-idle-conns" mapstructure:"min-idle-conns"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Enabled:    false,
		TTL:        24 * time.Hour,
		KeyPrefix:  "voicegate:webhook:",
		Addr:       "localhost:6379",
		MaxRetries: 3,
		PoolSize:   10,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.BoolVar(&o.Enabled, options.Join(prefixes...)+"dedup.enabled", o.Enabled, "Enable webhook delivery deduplication.")
	fs.DurationVar(&o.TTL, options.Join(prefixes...)+"dedup.ttl", o.TTL, "How long a delivery key is remembered.")
	fs.StringVar(&o.KeyPrefix, options.Join(prefixes...)+"dedup.key-prefix", o.KeyPrefix, "Redis key prefix for dedup keys.")
	fs.StringVar(&o.Addr, options.Join(prefixes...)+"dedup.addr", o.Addr, "Redis address (host:port).")
	fs.StringVar(&o.Password, options.Join(prefixes...)+"dedup.password", o.Password, "Redis password.")
	fs.IntVar(&o.Database, options.Join(prefixes...)+"dedup.database", o.Database, "Redis database number.")
	fs.IntVar(&o.MaxRetries, options.Join(prefixes...)+"dedup.max-retries", o.MaxRetries, "Redis max retries.")
	fs.IntVar(&o.PoolSize, options.Join(prefixes...)+"dedup.pool-size", o.PoolSize, "Redis connection pool size.")
	fs.IntVar(&o.MinIdleConns, options.Join(prefixes...)+"dedup.min-idle-conns", o.MinIdleConns, "Redis minimum idle connections.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil || !o.Enabled {
		return nil
	}

	var errs []error
	if o.Addr == "" {
		errs = append(errs, fmt.Errorf("dedup.addr is required when dedup is enabled"))
	}
	if o.TTL <= 0 {
		errs = append(errs, fmt.Errorf("dedup.ttl must be positive"))
	}
	return errs
}
