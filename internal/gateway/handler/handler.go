// Package handler implements the gateway's HTTP handlers.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
	"github.com/unlistededge/voicegate/internal/gateway/store"
	"github.com/unlistededge/voicegate/internal/pkg/signature"
	"github.com/unlistededge/voicegate/pkg/component/bolna"
)

// Forwarder pushes call events to the automation platform.
type Forwarder interface {
	CallEnded(ctx context.Context, payload interface{}) error
	LeadSaved(ctx context.Context, payload interface{}) error
	CallEndedConfigured() bool
	LeadSavedConfigured() bool
}

// Caller places and inspects outbound calls on the voice platform.
type Caller interface {
	CreateCall(ctx context.Context, phone, name string, metadata map[string]interface{}) (*bolna.CallResult, error)
	GetCallStatus(ctx context.Context, callID string) (*bolna.CallStatus, error)
	Configured() bool
}

// Handler wires the HTTP surface to the business layer.
type Handler struct {
	verifier  *signature.Verifier
	sigHeader string
	gate      *biz.Gate
	retriever *biz.Retriever
	deduper   store.Deduper
	leads     store.LeadStore
	dnc       *store.DNCList
	forwarder Forwarder
	caller    Caller

	embedderConfigured bool
	knowledgeReady     bool
}

// Config carries the handler's dependencies.
type Config struct {
	Verifier        *signature.Verifier
	SignatureHeader string
	Gate            *biz.Gate
	Retriever       *biz.Retriever
	Deduper         store.Deduper
	Leads           store.LeadStore
	DNC             *store.DNCList
	Forwarder       Forwarder
	Caller          Caller

	EmbedderConfigured bool
	KnowledgeReady     bool
}

// New creates a Handler.
func New(cfg *Config) *Handler {
	sigHeader := cfg.SignatureHeader
	if sigHeader == "" {
		sigHeader = signature.DefaultHeader
	}

	deduper := cfg.Deduper
	if deduper == nil {
		deduper = store.NoopDeduper{}
	}
	leads := cfg.Leads
	if leads == nil {
		leads = store.NoopLeadStore{}
	}

	return &Handler{
		verifier:           cfg.Verifier,
		sigHeader:          sigHeader,
		gate:               cfg.Gate,
		retriever:          cfg.Retriever,
		deduper:            deduper,
		leads:              leads,
		dnc:                cfg.DNC,
		forwarder:          cfg.Forwarder,
		caller:             cfg.Caller,
		embedderConfigured: cfg.EmbedderConfigured,
		knowledgeReady:     cfg.KnowledgeReady,
	}
}

// readVerifiedBody reads the request body and checks the webhook
// signature when one is present. It writes the error response itself
// and returns nil when the caller should stop.
func (h *Handler) readVerifiedBody(c *gin.Context) []byte {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil
	}

	sig := c.GetHeader(h.sigHeader)
	if sig != "" && h.verifier != nil && !h.verifier.Verify(body, sig) {
		logger.Warnw("Invalid webhook signature", "path", c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
		return nil
	}

	if sig == "" && h.verifier != nil && !h.verifier.Enabled() {
		logger.Warn("Webhook secret not set, skipping verification")
	}

	return body
}

// isDuplicate marks call_id+event and reports whether it was already
// processed. Dedup failures are logged and treated as first delivery.
func (h *Handler) isDuplicate(ctx context.Context, callID, event string) bool {
	if callID == "" {
		return false
	}
	seen, err := h.deduper.Seen(ctx, callID, event)
	if err != nil {
		logger.Errorw("Dedup check failed", "call_id", callID, "event", event, "error", err)
		return false
	}
	return seen
}
