// Package router registers the gateway's HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/unlistededge/voicegate/internal/gateway/handler"
	"github.com/unlistededge/voicegate/internal/pkg/middleware"
)

// Register builds the gin engine and mounts all routes.
func Register(h *handler.Handler, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logging("/health"),
		middleware.CORS(allowedOrigins),
	)

	engine.GET("/", h.Root)
	engine.GET("/health", h.Health)

	webhooks := engine.Group("/webhooks/bolna")
	{
		webhooks.POST("/call-started", h.CallStarted)
		webhooks.POST("/call-ended", h.CallEnded)
		webhooks.POST("/transcript", h.Transcript)
	}

	functions := engine.Group("/functions")
	{
		functions.POST("/save-lead-data", h.SaveLeadData)
		functions.POST("/check-compliance", h.CheckCompliance)
		functions.POST("/search-knowledge", h.SearchKnowledge)
	}

	calls := engine.Group("/calls")
	{
		calls.POST("", h.CreateCall)
		calls.GET("/:id", h.GetCall)
	}

	test := engine.Group("/test")
	{
		test.POST("/webhook", h.TestWebhook)
		test.GET("/search", h.TestSearch)
	}

	return engine
}
