package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSubmissions_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewSubmissions(reg)

	s.Observe(OutcomeOK, 10*time.Millisecond)
	s.Observe(OutcomeOK, 20*time.Millisecond)
	s.Observe(OutcomeUpstream, time.Second)

	if got := testutil.ToFloat64(s.Count(OutcomeOK)); got != 2 {
		t.Errorf("expected 2 ok submissions, got %v", got)
	}
	if got := testutil.ToFloat64(s.Count(OutcomeUpstream)); got != 1 {
		t.Errorf("expected 1 upstream error, got %v", got)
	}
	if n, err := testutil.GatherAndCount(reg, "algodojo_submit_judge_duration_seconds"); err != nil || n != 2 {
		t.Errorf("expected 2 histogram series, got %d (%v)", n, err)
	}
}

func TestSubmissions_NilIsNoop(t *testing.T) {
	var s *Submissions
	s.Observe(OutcomeOK, time.Second)
}

func TestUseGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	UseGin(r)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
