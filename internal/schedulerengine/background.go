package schedulerengine

import (
	"context"
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/config"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/submission"
)

// SweepEngine periodically fails submissions that were left pending,
// e.g. after a crash between create and finalize.
type SweepEngine struct {
	SweepCfg  *config.SweepSvcCfg
	lifecycle submission.ILifecycleManager
	logger    primary.Logger
}

func NewSweepEngine(
	sweepCfg *config.SweepSvcCfg,
	lifecycle submission.ILifecycleManager,
	logger primary.Logger,
) *SweepEngine {
	return &SweepEngine{
		SweepCfg:  sweepCfg,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Run sweeps once per interval until ctx is done
func (s *SweepEngine) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.SweepCfg.SweepInterval)
	defer ticker.Stop()

	s.logger.Info("Stale submission sweeper started",
		"interval", s.SweepCfg.SweepInterval.String(),
		"staleAfter", s.SweepCfg.StalePendingAfter.String())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stale submission sweeper stopped")
			return nil
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce drains stale pending submissions in batches
func (s *SweepEngine) SweepOnce(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		closed, err := s.lifecycle.SweepStale(ctx, s.SweepCfg.StalePendingAfter, s.SweepCfg.BatchSize)
		total += closed
		if err != nil {
			s.logger.Error("Failed to sweep stale submissions", "error", err)
			break
		}
		if closed < s.SweepCfg.BatchSize || closed == 0 {
			break
		}
	}
	if total > 0 {
		s.logger.Warn("Finalized stale submissions", "count", total)
	}
	return total
}
