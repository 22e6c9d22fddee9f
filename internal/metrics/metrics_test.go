package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.SessionCreated()
	m.AnswerScored("math", true)
	m.SessionCompleted(0.5)
	m.QuestionServed("math", "fallback", time.Second)
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.SessionCreated()
	m.SessionCreated()
	m.AnswerScored("logic", true)
	m.AnswerScored("logic", false)
	m.AnswerScored("logic", true)
	m.QuestionServed("logic", "fallback", 10*time.Millisecond)
	m.SessionCompleted(0.8)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnswersScored.WithLabelValues("logic", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnswersScored.WithLabelValues("logic", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuestionsServed.WithLabelValues("logic", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCompleted))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"))
}
