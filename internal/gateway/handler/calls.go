package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
)

// createCallRequest is the request body for placing an outbound call.
type createCallRequest struct {
	Phone    string                 `json:"phone" binding:"required"`
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
}

// CreateCall places an outbound call after a pre-call compliance check.
func (h *Handler) CreateCall(c *gin.Context) {
	if h.caller == nil || !h.caller.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "voice platform is not configured"})
		return
	}

	var req createCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	decision := h.gate.Evaluate(biz.CallContext{Phone: req.Phone})
	if !decision.Safe {
		logger.Warnw("Outbound call blocked", "phone", req.Phone, "reason", decision.Reason)
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "call blocked by compliance rules",
			"reason": decision.Reason,
		})
		return
	}

	result, err := h.caller.CreateCall(c.Request.Context(), req.Phone, req.Name, req.Metadata)
	if err != nil {
		logger.Errorw("Failed to create call", "phone", req.Phone, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create call"})
		return
	}

	logger.Infow("Call created", "call_id", result.CallID, "phone", req.Phone)
	c.JSON(http.StatusOK, result)
}

// GetCall returns the current status of a call.
func (h *Handler) GetCall(c *gin.Context) {
	if h.caller == nil || !h.caller.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "voice platform is not configured"})
		return
	}

	callID := c.Param("id")
	status, err := h.caller.GetCallStatus(c.Request.Context(), callID)
	if err != nil {
		logger.Errorw("Failed to get call status", "call_id", callID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get call status"})
		return
	}

	c.JSON(http.StatusOK, status)
}
