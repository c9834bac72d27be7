package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/roles/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(requestCounter.WithLabelValues(http.MethodGet, "/roles/:id", "204"))
	req := httptest.NewRequest(http.MethodGet, "/roles/abc", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	after := testutil.ToFloat64(requestCounter.WithLabelValues(http.MethodGet, "/roles/:id", "204"))

	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(deferredSkills.WithLabelValues("week_budget"))
	AddDeferredSkills("week_budget", 3)
	AddDeferredSkills("week_budget", 0)
	if got := testutil.ToFloat64(deferredSkills.WithLabelValues("week_budget")) - before; got != 3 {
		t.Fatalf("expected 3 deferred, got %v", got)
	}

	before = testutil.ToFloat64(gapAnalyses.WithLabelValues("Expert"))
	IncGapAnalysis("Expert")
	if got := testutil.ToFloat64(gapAnalyses.WithLabelValues("Expert")) - before; got != 1 {
		t.Fatalf("expected 1 analysis, got %v", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncSuggestions()
	r := gin.New()
	r.GET("/metrics", Handler())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "skillpath_suggestions_total") {
		t.Fatalf("expected suggestions counter in output")
	}
}
