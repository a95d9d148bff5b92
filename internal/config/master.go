package config

import (
	"fmt"
	"os"
	"time"
)

type AppConfig struct {
	DebugMode        bool
	ServiceName      string
	Port             int
	LogLevel         string
	LanguagesFile    string
	SweepSvcCfg      *SweepSvcCfg
	RedisConfig      *RedisConfig
	PostgresConfig   *PostgresConfig
	JwtConfig        *JwtConfig
	JudgeConfig      *JudgeConfig
	SubmissionConfig *SubmissionConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:        os.Getenv("DEBUG_MODE") == "true",
		ServiceName:      getEnv("SERVICE_NAME", "submission-judge"),
		Port:             getIntEnv("HTTP_PORT", 8082),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LanguagesFile:    getEnv("LANGUAGES_FILE", ""),
		SweepSvcCfg:      NewSweepSvcCfg(),
		RedisConfig:      NewRedisConfig(),
		PostgresConfig:   NewPostgresConfig(),
		JwtConfig:        NewJwtConfig(),
		JudgeConfig:      NewJudgeConfig(),
		SubmissionConfig: NewSubmissionConfig(),
	}
}

// Validate rejects settings the service cannot start with
func (c *AppConfig) Validate() error {
	if c.JwtConfig.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JudgeConfig.BaseURL == "" {
		return fmt.Errorf("JUDGE_BASE_URL is required")
	}
	if c.JudgeConfig.MaxAttempts <= 0 {
		return fmt.Errorf("JUDGE_POLL_MAX_ATTEMPTS must be positive")
	}
	if c.SweepSvcCfg.StalePendingAfter <= c.SubmitBudget() {
		return fmt.Errorf("STALE_PENDING_AFTER_SEC (%s) must exceed the longest submit (%s)",
			c.SweepSvcCfg.StalePendingAfter, c.SubmitBudget())
	}
	return nil
}

// SubmitBudget is how long a submission can stay pending on a live request:
// the insert, one dispatch call and the poll budget.
func (c *AppConfig) SubmitBudget() time.Duration {
	return c.SubmissionConfig.DBTimeout + c.JudgeConfig.RequestTimeout + c.JudgeConfig.PollBudget()
}
