package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawcrate/pawcrate-backend/internal/services"
)

type JobsHandler struct {
	scheduler services.FeedbackSchedulerService
}

func NewJobsHandler(scheduler services.FeedbackSchedulerService) *JobsHandler {
	return &JobsHandler{scheduler: scheduler}
}

// POST /api/jobs/send-feedback
// Invoked by an external cron service; the sweep itself has no timer.
func (h *JobsHandler) RunFeedbackSweep(c *gin.Context) {
	result := h.scheduler.RunSweep(c.Request.Context())
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	RespondOK(c, result)
}

// GET /api/jobs/send-feedback
func (h *JobsHandler) FeedbackSweepHint(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Use POST to trigger the job"})
}
