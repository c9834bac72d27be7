package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	gapAnalyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillpath_gap_analyses_total",
			Help: "Skill gap analyses by resulting skill level",
		},
		[]string{"level"},
	)

	deferredSkills = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillpath_roadmap_skills_deferred_total",
			Help: "Skills left out of a roadmap by reason",
		},
		[]string{"reason"},
	)

	suggestions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skillpath_suggestions_total",
			Help: "Role suggestion requests served",
		},
	)

	reportsStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skillpath_reports_stored_total",
			Help: "Combined analysis reports persisted",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestCounter,
		requestDuration,
		gapAnalyses,
		deferredSkills,
		suggestions,
		reportsStored,
	)
}

// IncGapAnalysis counts a gap analysis that produced the given skill level.
func IncGapAnalysis(level string) {
	gapAnalyses.WithLabelValues(level).Inc()
}

// AddDeferredSkills counts skills a roadmap could not schedule.
func AddDeferredSkills(reason string, n int) {
	if n <= 0 {
		return
	}
	deferredSkills.WithLabelValues(reason).Add(float64(n))
}

// IncSuggestions counts a role suggestion request.
func IncSuggestions() {
	suggestions.Inc()
}

// IncReportsStored counts a persisted report.
func IncReportsStored() {
	reportsStored.Inc()
}

// Middleware records request counts and latencies by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		requestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		requestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
