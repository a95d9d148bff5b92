package secondary

import "time"

// JudgeMetrics records pipeline outcomes
type JudgeMetrics interface {
	ObserveDispatch(jobs int, err error)
	ObservePoll(attempts int, err error)
	ObserveVerdict(path string, status string, elapsed time.Duration)
}
