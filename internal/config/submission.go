package config

import "time"

type SubmissionConfig struct {
	MaxCodeBytes    int
	RateLimitMax    int
	RateLimitWindow time.Duration
	DBTimeout       time.Duration
}

func NewSubmissionConfig() *SubmissionConfig {
	return &SubmissionConfig{
		MaxCodeBytes:    getIntEnv("MAX_CODE_BYTES", 64*1024),
		RateLimitMax:    getIntEnv("SUBMIT_RATE_LIMIT_MAX", 10),
		RateLimitWindow: getSecondsEnv("SUBMIT_RATE_LIMIT_WINDOW_SEC", time.Minute),
		DBTimeout:       getMillisEnv("DB_TIMEOUT_MS", 3*time.Second),
	}
}

// SweepSvcCfg controls the background finalizer for abandoned pending submissions
type SweepSvcCfg struct {
	SweepInterval     time.Duration
	StalePendingAfter time.Duration
	BatchSize         int
}

func NewSweepSvcCfg() *SweepSvcCfg {
	return &SweepSvcCfg{
		SweepInterval:     getSecondsEnv("SWEEP_INTERVAL_SEC", 60*time.Second),
		StalePendingAfter: getSecondsEnv("STALE_PENDING_AFTER_SEC", 120*time.Second),
		BatchSize:         getIntEnv("SWEEP_BATCH_SIZE", 100),
	}
}
