package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

const metricsNamespace = "submission_judge"

var _ secondary.JudgeMetrics = (*JudgeMetrics)(nil)

// 100ms -> 30s
var evaluationBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 10, 15, 20, 30}

// JudgeMetrics exports pipeline counters to Prometheus
type JudgeMetrics struct {
	dispatchTotal  *prometheus.CounterVec
	dispatchedJobs prometheus.Counter
	pollAttempts   *prometheus.HistogramVec
	verdictTotal   *prometheus.CounterVec
	evaluationHist *prometheus.HistogramVec
}

func NewJudgeMetrics(reg prometheus.Registerer) *JudgeMetrics {
	m := &JudgeMetrics{
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_total",
			Help:      "Number of batch dispatches by result",
		}, []string{"result"}),
		dispatchedJobs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dispatched_jobs_total",
			Help:      "Number of jobs sent to the execution engine",
		}),
		pollAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "poll_attempts",
			Help:      "Status requests needed per batch",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}, []string{"result"}),
		verdictTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "verdict_total",
			Help:      "Number of verdicts by path and status",
		}, []string{"path", "status"}),
		evaluationHist: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "evaluation_seconds",
			Help:      "Histogram for the end to end evaluation time",
			Buckets:   evaluationBuckets,
		}, []string{"path"}),
	}
	reg.MustRegister(m.dispatchTotal, m.dispatchedJobs, m.pollAttempts, m.verdictTotal, m.evaluationHist)
	return m
}

func (m *JudgeMetrics) ObserveDispatch(jobs int, err error) {
	m.dispatchTotal.WithLabelValues(resultLabel(err)).Inc()
	if err == nil {
		m.dispatchedJobs.Add(float64(jobs))
	}
}

func (m *JudgeMetrics) ObservePoll(attempts int, err error) {
	m.pollAttempts.WithLabelValues(resultLabel(err)).Observe(float64(attempts))
}

func (m *JudgeMetrics) ObserveVerdict(path string, status string, elapsed time.Duration) {
	m.verdictTotal.WithLabelValues(path, status).Inc()
	m.evaluationHist.WithLabelValues(path).Observe(elapsed.Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrJudgeTimeout):
		return "timeout"
	case errors.Is(err, errs.ErrDispatchInconsistent):
		return "inconsistent"
	case errors.Is(err, errs.ErrDispatchUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
