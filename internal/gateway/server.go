// Package gateway wires the webhook gateway together and runs it.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kart-io/logger"
	"github.com/kart-io/version"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
	"github.com/unlistededge/voicegate/internal/gateway/handler"
	"github.com/unlistededge/voicegate/internal/gateway/router"
	"github.com/unlistededge/voicegate/internal/gateway/store"
	"github.com/unlistededge/voicegate/internal/pkg/signature"
	"github.com/unlistededge/voicegate/pkg/component/automation"
	"github.com/unlistededge/voicegate/pkg/component/bolna"
	"github.com/unlistededge/voicegate/pkg/component/milvus"
	"github.com/unlistededge/voicegate/pkg/component/openai"
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

// Name is the name of the application.
const Name = "voicegate"

// Config contains application-related configurations.
type Config struct {
	HTTPOptions       *httpopts.Options
	LogOptions        *logopts.Options
	MilvusOptions     *milvusopts.Options
	EmbeddingOptions  *embeddingopts.Options
	BolnaOptions      *bolnaopts.Options
	AutomationOptions *automationopts.Options
	ComplianceOptions *complianceopts.Options
	KnowledgeOptions  *knowledgeopts.Options
	DedupOptions      *dedupopts.Options
	MongoOptions      *mongoopts.Options
	SignatureOptions  *signatureopts.Options
}

// Server is the assembled gateway with its owned resources.
type Server struct {
	httpSrv         *http.Server
	shutdownTimeout time.Duration
	closers         []func()
}

// NewServer initializes and returns a new Server instance.
func (cfg *Config) NewServer(ctx context.Context) (*Server, error) {
	cfg.LogOptions.AddInitialField("service.name", Name)
	cfg.LogOptions.AddInitialField("service.version", version.Get().GitVersion)
	if err := cfg.LogOptions.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Infow("Starting voice gateway",
		"calling_hours_start", cfg.ComplianceOptions.CallingHoursStart,
		"calling_hours_end", cfg.ComplianceOptions.CallingHoursEnd,
		"timezone", cfg.ComplianceOptions.Timezone,
	)

	var closers []func()

	// Knowledge base: Milvus if reachable, otherwise search degrades to
	// advisor fallback answers.
	var vectorStore store.VectorStore
	knowledgeReady := false
	milvusClient, err := milvus.New(cfg.MilvusOptions)
	if err != nil {
		logger.Warnw("Milvus unavailable, knowledge search degraded", "error", err)
		vectorStore = store.NewMemoryStore()
	} else {
		vectorStore = store.NewMilvusStore(milvusClient)
		knowledgeReady = true
		closers = append(closers, func() { _ = milvusClient.Close(context.Background()) })
		logger.Info("Milvus client initialized")
	}

	embedder := openai.New(cfg.EmbeddingOptions)
	retriever := biz.NewRetriever(embedder, vectorStore, cfg.KnowledgeOptions)

	dnc, err := store.NewDNCList(cfg.ComplianceOptions.DNCFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load dnc list: %w", err)
	}
	closers = append(closers, func() { _ = dnc.Close() })
	if cfg.ComplianceOptions.DNCFile != "" {
		logger.Infow("DNC list loaded", "path", cfg.ComplianceOptions.DNCFile, "entries", dnc.Len())
	}

	gate, err := biz.NewGate(cfg.ComplianceOptions, dnc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize compliance gate: %w", err)
	}

	var deduper store.Deduper = store.NoopDeduper{}
	if cfg.DedupOptions.Enabled {
		redisDeduper, err := store.NewRedisDeduper(ctx, cfg.DedupOptions)
		if err != nil {
			logger.Warnw("Redis unavailable, webhook dedup disabled", "error", err)
		} else {
			deduper = redisDeduper
			closers = append(closers, func() { _ = redisDeduper.Close() })
			logger.Infow("Webhook dedup enabled", "addr", cfg.DedupOptions.Addr)
		}
	}

	var leads store.LeadStore = store.NoopLeadStore{}
	if cfg.MongoOptions.Enabled() {
		mongoStore, err := store.NewMongoLeadStore(ctx, cfg.MongoOptions)
		if err != nil {
			logger.Warnw("MongoDB unavailable, lead archive disabled", "error", err)
		} else {
			leads = mongoStore
			closers = append(closers, func() { _ = mongoStore.Close(context.Background()) })
			logger.Infow("Lead archive enabled", "database", cfg.MongoOptions.Database)
		}
	}

	bolnaClient := bolna.New(cfg.BolnaOptions)
	forwarder := automation.New(cfg.AutomationOptions)
	verifier := signature.NewVerifier(cfg.SignatureOptions.Secret)
	if !verifier.Enabled() {
		logger.Warn("Webhook secret not configured, signature verification disabled")
	}

	h := handler.New(&handler.Config{
		Verifier:           verifier,
		SignatureHeader:    cfg.SignatureOptions.Header,
		Gate:               gate,
		Retriever:          retriever,
		Deduper:            deduper,
		Leads:              leads,
		DNC:                dnc,
		Forwarder:          forwarder,
		Caller:             bolnaClient,
		EmbedderConfigured: cfg.EmbeddingOptions.APIKey != "",
		KnowledgeReady:     knowledgeReady,
	})

	engine := router.Register(h, cfg.HTTPOptions.AllowedOrigins)

	httpSrv := &http.Server{
		Addr:         cfg.HTTPOptions.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTPOptions.ReadTimeout,
		WriteTimeout: cfg.HTTPOptions.WriteTimeout,
		IdleTimeout:  cfg.HTTPOptions.IdleTimeout,
	}

	return &Server{
		httpSrv:         httpSrv,
		shutdownTimeout: cfg.HTTPOptions.ShutdownTimeout,
		closers:         closers,
	}, nil
}

// Run starts the server and blocks until a termination signal arrives,
// then drains in-flight requests before releasing resources.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		for _, c := range s.closers {
			c()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	case sig := <-quit:
		logger.Infow("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
