// Package options contains flags and options for initializing the gateway.
package options

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/unlistededge/voicegate/internal/gateway"
	automationopts "github.com/unlistededge/voicegate/pkg/options/automation"
	bolnaopts "github.com/unlistededge/voicegate/pkg/options/bolna"
	complianceopts "github.com/unlistededge/voicegate/pkg/options/compliance"
	dedupopts "github.com/unlistededge/voicegate/pkg/options/dedup"
	embeddingopts "github.com/unlistededge/voicegate/pkg/options/embedding"
	httpopts "github.com/unlistededge/voicegate/pkg/options/http"
	knowledgeopts "github.com/unlistededge/voicegate/pkg/options/knowledge"
	logopts "github.com/unlistededge/voicegate/pkg/options/logger"
	milvusopts "github.com/unlistededge/voicegate/pkg/options/milvus"
	mongoopts "github.com/unlistededge/voicegate/pkg/options/mongo"
	signatureopts "github.com/unlistededge/voicegate/pkg/options/signature"
)

// ServerOptions contains the configuration options for the gateway.
type ServerOptions struct {
	// HTTPOptions contains HTTP server configuration.
	HTTPOptions *httpopts.Options `json:"http" mapstructure:"http"`

	// LogOptions contains logger configuration.
	LogOptions *logopts.Options `json:"log" mapstructure:"log"`

	// MilvusOptions contains Milvus database configuration.
	MilvusOptions *milvusopts.Options `json:"milvus" mapstructure:"milvus"`

	// EmbeddingOptions contains embedding provider configuration.
	EmbeddingOptions *embeddingopts.Options `json:"embedding" mapstructure:"embedding"`

	// BolnaOptions contains voice platform configuration.
	BolnaOptions *bolnaopts.Options `json:"bolna" mapstructure:"bolna"`

	// AutomationOptions contains automation webhook configuration.
	AutomationOptions *automationopts.Options `json:"automation" mapstructure:"automation"`

	// ComplianceOptions contains compliance rule configuration.
	ComplianceOptions *complianceopts.Options `json:"compliance" mapstructure:"compliance"`

	// KnowledgeOptions contains knowledge base configuration.
	KnowledgeOptions *knowledgeopts.Options `json:"knowledge" mapstructure:"knowledge"`

	// DedupOptions contains webhook dedup configuration.
	DedupOptions *dedupopts.Options `json:"dedup" mapstructure:"dedup"`

	// MongoOptions contains lead archive configuration.
	MongoOptions *mongoopts.Options `json:"mongo" mapstructure:"mongo"`

	// SignatureOptions contains webhook signature configuration.
	SignatureOptions *signatureopts.Options `json:"signature" mapstructure:"signature"`
}

// NewServerOptions creates a ServerOptions instance with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		HTTPOptions:       httpopts.NewOptions(),
		LogOptions:        logopts.NewOptions(),
		MilvusOptions:     milvusopts.NewOptions(),
		EmbeddingOptions:  embeddingopts.NewOptions(),
		BolnaOptions:      bolnaopts.NewOptions(),
		AutomationOptions: automationopts.NewOptions(),
		ComplianceOptions: complianceopts.NewOptions(),
		KnowledgeOptions:  knowledgeopts.NewOptions(),
		DedupOptions:      dedupopts.NewOptions(),
		MongoOptions:      mongoopts.NewOptions(),
		SignatureOptions:  signatureopts.NewOptions(),
	}
}

// AddFlags adds all option flags to the given flag set.
func (o *ServerOptions) AddFlags(fs *pflag.FlagSet) {
	o.HTTPOptions.AddFlags(fs)
	o.LogOptions.AddFlags(fs)
	o.MilvusOptions.AddFlags(fs)
	o.EmbeddingOptions.AddFlags(fs)
	o.BolnaOptions.AddFlags(fs)
	o.AutomationOptions.AddFlags(fs)
	o.ComplianceOptions.AddFlags(fs)
	o.KnowledgeOptions.AddFlags(fs)
	o.DedupOptions.AddFlags(fs)
	o.MongoOptions.AddFlags(fs)
	o.SignatureOptions.AddFlags(fs)
}

// Complete fills in any fields not set that are required to have valid data.
func (o *ServerOptions) Complete() error {
	return nil
}

// Validate checks whether the options in ServerOptions are valid.
func (o *ServerOptions) Validate() error {
	var errs []error

	errs = append(errs, o.HTTPOptions.Validate()...)
	if err := o.LogOptions.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, o.MilvusOptions.Validate()...)
	errs = append(errs, o.EmbeddingOptions.Validate()...)
	errs = append(errs, o.BolnaOptions.Validate()...)
	errs = append(errs, o.AutomationOptions.Validate()...)
	errs = append(errs, o.ComplianceOptions.Validate()...)
	errs = append(errs, o.KnowledgeOptions.Validate()...)
	errs = append(errs, o.DedupOptions.Validate()...)
	errs = append(errs, o.MongoOptions.Validate()...)
	errs = append(errs, o.SignatureOptions.Validate()...)

	return errors.Join(errs...)
}

// Config builds a gateway.Config based on ServerOptions.
func (o *ServerOptions) Config() (*gateway.Config, error) {
	return &gateway.Config{
		HTTPOptions:       o.HTTPOptions,
		LogOptions:        o.LogOptions,
		MilvusOptions:     o.MilvusOptions,
		EmbeddingOptions:  o.EmbeddingOptions,
		BolnaOptions:      o.BolnaOptions,
		AutomationOptions: o.AutomationOptions,
		ComplianceOptions: o.ComplianceOptions,
		KnowledgeOptions:  o.KnowledgeOptions,
		DedupOptions:      o.DedupOptions,
		MongoOptions:      o.MongoOptions,
		SignatureOptions:  o.SignatureOptions,
	}, nil
}
