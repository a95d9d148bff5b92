package config

import "time"

// JudgeConfig holds the execution engine client and poll budget settings
type JudgeConfig struct {
	BaseURL        string
	APIKey         string
	APIHost        string
	AuthToken      string
	RequestTimeout time.Duration
	MaxInflight    int
	PollInterval   time.Duration
	MaxAttempts    int
}

func NewJudgeConfig() *JudgeConfig {
	return &JudgeConfig{
		BaseURL:        getEnv("JUDGE_BASE_URL", "https://judge0-ce.p.rapidapi.com"),
		APIKey:         getEnv("JUDGE_API_KEY", ""),
		APIHost:        getEnv("JUDGE_API_HOST", "judge0-ce.p.rapidapi.com"),
		AuthToken:      getEnv("JUDGE_AUTH_TOKEN", ""),
		RequestTimeout: getMillisEnv("JUDGE_REQUEST_TIMEOUT_MS", 10*time.Second),
		MaxInflight:    getIntEnv("JUDGE_MAX_INFLIGHT", 32),
		PollInterval:   getMillisEnv("JUDGE_POLL_INTERVAL_MS", time.Second),
		MaxAttempts:    getIntEnv("JUDGE_POLL_MAX_ATTEMPTS", 10),
	}
}

// PollBudget is the hard wall-clock limit on waiting for one batch
func (c *JudgeConfig) PollBudget() time.Duration {
	return time.Duration(c.MaxAttempts) * c.PollInterval
}
