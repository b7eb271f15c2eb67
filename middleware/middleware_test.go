package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"link_tracker/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core).Sugar()))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 request log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["path"] != "/ping" {
		t.Errorf("Expected path /ping, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("Expected status %d, got %v", http.StatusTeapot, fields["status"])
	}
	if fields["client_ip"] != "1.2.3.4" {
		t.Errorf("Expected client_ip 1.2.3.4, got %v", fields["client_ip"])
	}
}

func TestRequestMetrics(t *testing.T) {
	router := gin.New()
	router.Use(RequestMetrics())
	router.GET("/observed", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.CollectAndCount(metrics.RequestDuration)

	for _, path := range []string{"/observed", "/nowhere"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	}

	after := testutil.CollectAndCount(metrics.RequestDuration)
	if after < before+2 {
		t.Errorf("Expected at least 2 new series, got %d -> %d", before, after)
	}
}
