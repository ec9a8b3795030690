package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	// Pipeline trigger routes
	r.GET("/run_automation", handler.RunSummarize)
	r.GET("/orders/pull", handler.RunOrderIngest)
	r.GET("/pipeline/generate", handler.RunDetailCopy)
	r.GET("/images/sort", handler.RunImageSort)
	r.GET("/report/daily", handler.RunDailyReport)

	// Health and history endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/healthz", handler.GetHealth)
	r.GET("/runs", handler.ListRuns)

	// Task echo endpoint
	r.GET("/tasks/create", handler.CreateTask)
	r.POST("/tasks/create", handler.CreateTask)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Backkeeper",
			"version":     handler.version,
			"description": "Back-office automations for the store workspace",
			"endpoints": map[string]string{
				"summarize":    "/run_automation",
				"order_ingest": "/orders/pull",
				"detail_copy":  "/pipeline/generate",
				"image_sort":   "/images/sort",
				"daily_report": "/report/daily",
				"health":       "/health",
				"runs":         "/runs",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
