package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyericho/backkeeper/app/database"
	"github.com/hyericho/backkeeper/app/pipeline"
	"github.com/hyericho/backkeeper/app/tasks"
)

const defaultRunsLimit = 50

func NewHandler(runner *pipeline.Runner, runRepo database.RunRepository, version string) *Handler {
	return &Handler{
		runner:  runner,
		runRepo: runRepo,
		version: version,
	}
}

// runPipeline invokes one automation synchronously within the request. A
// config problem or an in-flight run comes back as a 200 with a non-ok
// summary status; only a remote failure mid-run is a server error.
func (h *Handler) runPipeline(c *gin.Context, name pipeline.Name) {
	summary, err := h.runner.Run(c.Request.Context(), name)
	tasks.RecordRun(h.runRepo, summary)

	if err != nil {
		slog.Error("Pipeline trigger failed", "pipeline", name, "run_id", summary.RunID, "error", err)
		c.JSON(http.StatusInternalServerError, summary)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) RunSummarize(c *gin.Context) {
	h.runPipeline(c, pipeline.NameSummarize)
}

func (h *Handler) RunOrderIngest(c *gin.Context) {
	h.runPipeline(c, pipeline.NameOrderIngest)
}

func (h *Handler) RunDetailCopy(c *gin.Context) {
	h.runPipeline(c, pipeline.NameDetailCopy)
}

func (h *Handler) RunImageSort(c *gin.Context) {
	h.runPipeline(c, pipeline.NameImageSort)
}

func (h *Handler) RunDailyReport(c *gin.Context) {
	h.runPipeline(c, pipeline.NameDailyReport)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListRuns(c *gin.Context) {
	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := h.runRepo.ListRecent(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":      runs,
		"total":     len(runs),
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

// CreateTask echoes an arbitrary JSON body back with 201. Kept for the
// render deployment's smoke checks; it does not enqueue anything.
func (h *Handler) CreateTask(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusOK, "Use POST to create tasks")
		return
	}

	var body interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"received": body})
}
