package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	r := gin.New()
	r.Use(metrics.Handler())
	r.GET("/boards/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/boards/a", "/boards/b", "/nowhere"} {
		req, _ := http.NewRequest("GET", path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	expected := `
# HELP boards_http_requests_total HTTP requests by method, route and status code.
# TYPE boards_http_requests_total counter
boards_http_requests_total{method="GET",route="/boards/:id",status="200"} 2
boards_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(expected), "boards_http_requests_total"))
}

func TestRequestLogger_WritesOneEntryPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.JSONFormatter{})

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.GET("/boards/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req, _ := http.NewRequest("GET", "/boards/abc", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"route":"/boards/:id"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}
