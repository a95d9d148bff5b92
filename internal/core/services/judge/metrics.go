package judge

import (
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
)

var _ secondary.JudgeMetrics = NopMetrics{}

// NopMetrics discards every observation
type NopMetrics struct{}

func (NopMetrics) ObserveDispatch(int, error) {}
func (NopMetrics) ObservePoll(int, error) {}
func (NopMetrics) ObserveVerdict(string, string, time.Duration) {}

// MetricsOrNop substitutes NopMetrics for a nil recorder
func MetricsOrNop(m secondary.JudgeMetrics) secondary.JudgeMetrics {
	if m == nil {
		return NopMetrics{}
	}
	return m
}
