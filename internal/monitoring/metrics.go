package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studenthub",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "studenthub",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studenthub",
		Name:      "interview_sessions_created_total",
		Help:      "Total number of interview sessions created",
	})

	SessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studenthub",
		Name:      "interview_sessions_finished_total",
		Help:      "Total number of interview sessions finished, by terminal status",
	}, []string{"status"})

	AnswersEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studenthub",
		Name:      "answers_evaluated_total",
		Help:      "Total number of answers evaluated, by round type",
	}, []string{"round_type"})

	DegradedEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studenthub",
		Name:      "evaluations_degraded_total",
		Help:      "Total number of evaluations that fell back to heuristics",
	})

	QuestionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studenthub",
		Name:      "questions_served_total",
		Help:      "Total number of questions served, by source tier",
	}, []string{"source"})
)

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request metrics with Prometheus labels.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		labels := prometheus.Labels{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": strconv.Itoa(rec.status),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
