// Package metrics exposes Prometheus collectors for the HTTP layer and the
// quiz engine.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	SessionsCreated   prometheus.Counter
	SessionsCompleted prometheus.Counter
	AnswersScored     *prometheus.CounterVec
	QuestionsServed   *prometheus.CounterVec
	ProviderDuration  prometheus.Histogram
	FinalAccuracy     prometheus.Histogram
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "iqfieldbot_sessions_created_total",
			Help: "Sessions created",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "iqfieldbot_sessions_completed_total",
			Help: "Sessions that reached the configured length",
		}),
		AnswersScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iqfieldbot_answers_total",
				Help: "Scored answers by field and outcome",
			},
			[]string{"field", "correct"},
		),
		QuestionsServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iqfieldbot_questions_served_total",
				Help: "Questions attached to sessions by field and source (provider or fallback)",
			},
			[]string{"field", "source"},
		),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "iqfieldbot_provider_duration_seconds",
			Help:    "Time spent obtaining a question, including retries",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		}),
		FinalAccuracy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "iqfieldbot_session_accuracy",
			Help:    "Accuracy of completed sessions",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDuration,
		m.SessionsCreated,
		m.SessionsCompleted,
		m.AnswersScored,
		m.QuestionsServed,
		m.ProviderDuration,
		m.FinalAccuracy,
	)
	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SessionCreated counts a new session.
func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.SessionsCreated.Inc()
}

// AnswerScored counts one scored answer.
func (m *Metrics) AnswerScored(field string, correct bool) {
	if m == nil {
		return
	}
	m.AnswersScored.WithLabelValues(field, strconv.FormatBool(correct)).Inc()
}

// SessionCompleted counts a completed session and observes its accuracy.
func (m *Metrics) SessionCompleted(accuracy float64) {
	if m == nil {
		return
	}
	m.SessionsCompleted.Inc()
	m.FinalAccuracy.Observe(accuracy)
}

// QuestionServed records where a question came from and how long it took.
func (m *Metrics) QuestionServed(field, source string, d time.Duration) {
	if m == nil {
		return
	}
	m.QuestionsServed.WithLabelValues(field, source).Inc()
	m.ProviderDuration.Observe(d.Seconds())
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
