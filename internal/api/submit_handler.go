package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/judge"
	"github.com/gsarma/algodojo/internal/metrics"
)

// Submit forwards a payload to the judge and relays its response.
//
// Request body:
//
//	{
//	  "language_id": 71,
//	  "source_code": "print(1)",
//	  "test_cases":  [{"input": "", "output": "1"}]   // optional, only the first is judged
//	}
//
// Replies 200 with the judge's JSON unchanged, or 500 {"error": "..."} for
// any failure. Nothing is retried.
func (h *Handler) Submit(c *gin.Context) {
	var body judge.Payload
	if err := c.ShouldBindJSON(&body); err != nil {
		h.metrics.Observe(metrics.OutcomeBadRequest, 0)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	raw, err := h.judge.Submit(c.Request.Context(), judge.NewRequest(body))
	took := time.Since(start)
	if err != nil {
		h.metrics.Observe(metrics.OutcomeUpstream, took)
		h.log(c).Warn("judge submission failed",
			zap.Int("language_id", body.LanguageID),
			zap.Duration("took", took),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.Observe(metrics.OutcomeOK, took)
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
