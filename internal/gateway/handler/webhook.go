package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/unlistededge/voicegate/internal/model"
)

// callEventPayload is the common shape of voice platform webhooks.
type callEventPayload struct {
	CallID         string                 `json:"call_id"`
	CustomerNumber string                 `json:"customer_number"`
	AgentID        string                 `json:"agent_id"`
	Duration       int                    `json:"duration"`
	Status         string                 `json:"status"`
	Transcript     string                 `json:"transcript"`
	RecordingURL   string                 `json:"recording_url"`
	CollectedData  map[string]interface{} `json:"collected_data"`
	Text           string                 `json:"text"`
}

// CallStarted handles the call-started webhook.
func (h *Handler) CallStarted(c *gin.Context) {
	body := h.readVerifiedBody(c)
	if body == nil {
		return
	}

	var payload callEventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	if h.isDuplicate(c.Request.Context(), payload.CallID, "call-started") {
		c.JSON(http.StatusOK, gin.H{"status": "duplicate", "call_id": payload.CallID})
		return
	}

	logger.Infow("Call started",
		"call_id", payload.CallID,
		"customer_number", payload.CustomerNumber,
		"agent_id", payload.AgentID,
	)

	c.JSON(http.StatusOK, gin.H{"status": "received", "call_id": payload.CallID})
}

// CallEnded handles the call-ended webhook and forwards the call summary
// to the automation platform.
func (h *Handler) CallEnded(c *gin.Context) {
	body := h.readVerifiedBody(c)
	if body == nil {
		return
	}

	var payload callEventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	if h.isDuplicate(c.Request.Context(), payload.CallID, "call-ended") {
		c.JSON(http.StatusOK, gin.H{"status": "duplicate", "call_id": payload.CallID})
		return
	}

	collected := payload.CollectedData
	if collected == nil {
		collected = map[string]interface{}{}
	}

	event := model.CallEndedEvent{
		CallID:          payload.CallID,
		CustomerNumber:  payload.CustomerNumber,
		DurationSeconds: payload.Duration,
		Status:          payload.Status,
		Transcript:      payload.Transcript,
		RecordingURL:    payload.RecordingURL,
		CollectedData:   collected,
		Timestamp:       time.Now(),
	}

	logger.Infow("Call ended",
		"call_id", event.CallID,
		"customer_number", event.CustomerNumber,
		"status", event.Status,
		"duration_seconds", event.DurationSeconds,
	)

	if h.forwarder != nil && h.forwarder.CallEndedConfigured() {
		if err := h.forwarder.CallEnded(c.Request.Context(), event); err != nil {
			logger.Errorw("Failed to forward call-ended event", "call_id", event.CallID, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to forward call data"})
			return
		}
		logger.Infow("Forwarded call-ended event", "call_id", event.CallID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed", "call_id": event.CallID})
}

// Transcript handles real-time transcript updates.
func (h *Handler) Transcript(c *gin.Context) {
	body := h.readVerifiedBody(c)
	if body == nil {
		return
	}

	var payload callEventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	text := payload.Text
	if runes := []rune(text); len(runes) > 100 {
		text = string(runes[:100])
	}
	logger.Infow("Transcript update", "call_id", payload.CallID, "text", text)

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// TestWebhook echoes the payload back. Used to verify integrations.
func (h *Handler) TestWebhook(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	logger.Infow("Test webhook received", "data", data)
	c.JSON(http.StatusOK, gin.H{
		"status": "received",
		"data":   data,
	})
}
