package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/crypto"
	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/judge0"
	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/metrics"
	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/postgres/problemrepository"
	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/postgres/submissionrepository"
	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/redis/ratelimit"
	"gitlab.com/fcv-2025.net/submission-judge/internal/config"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/language"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/submission"
	http2 "gitlab.com/fcv-2025.net/submission-judge/internal/http"
	"gitlab.com/fcv-2025.net/submission-judge/internal/schedulerengine"
)

func main() {
	InitReader()

	sysCfg := config.NewSystemConfig()
	logger, err := logging.NewZapLogger(sysCfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := sysCfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("Starting submission judge service", "service", sysCfg.ServiceName, "port", sysCfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
	if err != nil {
		logger.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// the limiter fails open, so a missing redis only disables rate limiting
		logger.Warn("Redis unreachable, submit rate limiting is degraded", "addr", sysCfg.RedisConfig.Url, "error", err)
	}

	runtimes, err := config.LoadLanguages(sysCfg.LanguagesFile, language.DefaultRuntimes)
	if err != nil {
		logger.Error("Failed to load language table", "file", sysCfg.LanguagesFile, "error", err)
		os.Exit(1)
	}
	resolver, err := language.NewResolver(runtimes)
	if err != nil {
		logger.Error("Invalid language table", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	judgeMetrics := metrics.NewJudgeMetrics(registry)

	// SECONDARY PORTS
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger, sysCfg.PostgresConfig.Schema)
	if err := submissionRepo.EnsureTableExists(ctx); err != nil {
		logger.Error("Failed to ensure submissions table", "error", err)
		os.Exit(1)
	}
	problemRepo := problemrepository.NewProblemRepository(db, logger, sysCfg.PostgresConfig.Schema)
	limiter := ratelimit.NewRateLimiter(redisClient, sysCfg.SubmissionConfig.DBTimeout, logger)
	executor := judge0.NewClient(sysCfg.JudgeConfig, nil, logger)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	pipeline := judge.NewPipeline(
		judge.NewDispatcher(executor, judgeMetrics, logger),
		judge.NewPoller(executor, sysCfg.JudgeConfig.PollInterval, sysCfg.JudgeConfig.MaxAttempts, judgeMetrics, logger),
		logger,
	)
	lifecycle := submission.NewLifecycleManager(submissionRepo, sysCfg.SubmissionConfig.DBTimeout, logger)
	submissionSvc := submission.NewSubmissionService(
		resolver,
		problemRepo,
		submissionRepo,
		pipeline,
		lifecycle,
		limiter,
		judgeMetrics,
		sysCfg.SubmissionConfig,
		logger,
	)
	serviceProvider := http2.NewServiceProvider(submissionSvc, jwtProvider, registry)

	//server
	httpServer := http2.NewServer(sysCfg.Port, sysCfg.ServiceName, sysCfg.JwtConfig.CookieName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	sweeper := schedulerengine.NewSweepEngine(sysCfg.SweepSvcCfg, lifecycle, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(httpServer.Start)
	if !sysCfg.DebugMode {
		g.Go(func() error { return sweeper.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("successfully shutdown server")
}

// setupDatabase opens and pings the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// InitReader loads <env>.env when an environment name is passed as the first argument
func InitReader() {
	if len(os.Args) < 2 {
		return
	}
	environment := os.Args[1]
	if err := godotenv.Load(environment + ".env"); err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
