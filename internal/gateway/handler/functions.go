package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
)

// functionRequest is the envelope the voice agent sends to function
// endpoints during a conversation.
type functionRequest struct {
	CallID     string                 `json:"call_id"`
	Query      string                 `json:"query"`
	Parameters map[string]interface{} `json:"parameters"`
}

// SaveLeadData captures customer details collected during a call.
func (h *Handler) SaveLeadData(c *gin.Context) {
	var req functionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"error":  "invalid JSON payload",
			"result": biz.LeadFallbackResult(),
		})
		return
	}

	if req.Parameters == nil {
		req.Parameters = map[string]interface{}{}
	}

	lead := biz.NormalizeLead(req.CallID, req.Parameters, time.Now())
	logger.Infow("Lead data collected",
		"call_id", lead.CallID,
		"name", lead.Name,
		"phone", lead.Phone,
		"interest_level", lead.InterestLevel,
	)

	if err := h.leads.Save(c.Request.Context(), lead); err != nil {
		logger.Errorw("Failed to archive lead", "call_id", lead.CallID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"error":  err.Error(),
			"result": biz.LeadFallbackResult(),
		})
		return
	}

	if h.forwarder != nil && h.forwarder.LeadSavedConfigured() {
		if err := h.forwarder.LeadSaved(c.Request.Context(), lead); err != nil {
			// The lead is archived; downstream delivery is best effort.
			logger.Errorw("Failed to forward lead", "call_id", lead.CallID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  biz.LeadSavedResult(),
		"lead_id": lead.CallID,
		"status":  "saved",
	})
}

// CheckCompliance evaluates the compliance gate for the current turn.
func (h *Handler) CheckCompliance(c *gin.Context) {
	var req functionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Parameters = map[string]interface{}{}
	}
	if req.Parameters == nil {
		req.Parameters = map[string]interface{}{}
	}

	phone, _ := req.Parameters["phone"].(string)
	text, _ := req.Parameters["text"].(string)

	decision := h.gate.Evaluate(biz.CallContext{Phone: phone, Text: text})
	if !decision.Safe {
		logger.Warnw("Compliance check blocked call",
			"call_id", req.CallID,
			"reason", decision.Reason,
		)
	}

	c.JSON(http.StatusOK, decision)
}

// SearchKnowledge answers a customer question from the knowledge base.
func (h *Handler) SearchKnowledge(c *gin.Context) {
	var req functionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"error":  "invalid JSON payload",
			"result": "I need a specific question to help you with.",
		})
		return
	}

	query := req.Query
	if query == "" && req.Parameters != nil {
		query, _ = req.Parameters["query"].(string)
	}
	if query == "" {
		c.JSON(http.StatusOK, gin.H{
			"error":  "No query provided",
			"result": "I need a specific question to help you with.",
		})
		return
	}

	answer := h.retriever.Answer(c.Request.Context(), query)
	logger.Infow("Knowledge search answered",
		"call_id", req.CallID,
		"confidence", answer.Confidence,
		"sources_used", answer.SourcesUsed,
	)

	c.JSON(http.StatusOK, answer)
}

// TestSearch exposes raw search results for debugging.
func (h *Handler) TestSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	results := h.retriever.Search(c.Request.Context(), query)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}
