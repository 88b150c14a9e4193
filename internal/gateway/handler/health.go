package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/version"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
)

// Root is a liveness probe with basic service identity.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"app":       "voicegate",
		"version":   version.Get().GitVersion,
		"platform":  "Bolna AI",
		"timestamp": time.Now().Format(time.RFC3339),
		"message":   "Unlisted Edge Voice Caller Bot API is running!",
	})
}

// Health reports integration readiness and the current calling window.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"services": gin.H{
			"api":                  "operational",
			"bolna_configured":     h.caller != nil && h.caller.Configured(),
			"embedder_configured":  h.embedderConfigured,
			"knowledge_configured": h.knowledgeReady,
			"automation_configured": h.forwarder != nil &&
				(h.forwarder.CallEndedConfigured() || h.forwarder.LeadSavedConfigured()),
		},
		"calling_hours": callingHours(h.gate),
		"timestamp":     time.Now().Format(time.RFC3339),
	})
}

func callingHours(gate *biz.Gate) gin.H {
	start, end := gate.CallingWindow()
	return gin.H{
		"start":             start,
		"end":               end,
		"currently_allowed": gate.WithinCallingHours(),
	}
}
