package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

const metricsNamespace = "algodojo"

// Submission outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeBadRequest = "bad_request"
	OutcomeUpstream   = "upstream_error"
)

// Submissions instruments the judge round trip of the submission proxy.
type Submissions struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewSubmissions creates the collectors and registers them with reg.
func NewSubmissions(reg prometheus.Registerer) *Submissions {
	s := &Submissions{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "submit",
			Name:      "requests_total",
			Help:      "Submissions proxied to the judge, by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "submit",
			Name:      "judge_duration_seconds",
			Help:      "Time spent waiting for the judge",
			Buckets:   []float64{.1, .25, .5, 1, 2, 5, 10, 30},
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(s.total, s.duration)
	}
	return s
}

// Observe records one submission. A nil receiver is a no-op.
func (s *Submissions) Observe(outcome string, took time.Duration) {
	if s == nil {
		return
	}
	s.total.WithLabelValues(outcome).Inc()
	s.duration.WithLabelValues(outcome).Observe(took.Seconds())
}

// Count returns the counter for outcome. It is meant for tests.
func (s *Submissions) Count(outcome string) prometheus.Counter {
	return s.total.WithLabelValues(outcome)
}

// UseGin attaches request metrics to r, labelled by route pattern.
func UseGin(r *gin.Engine) {
	p := ginprometheus.NewWithConfig(ginprometheus.Config{
		Subsystem:          "gin",
		DisableBodyReading: true,
	})
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.FullPath()
	}
	r.Use(p.HandlerFunc())
}
