// Package scheduler drives the time-based booking transitions.
package scheduler

import (
	"context"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"go.uber.org/zap"
)

// Sweeper applies due auto-cancel and auto-complete transitions.
type Sweeper interface {
	RunLifecycleSweep(ctx context.Context) (application.SweepResult, error)
}

// LifecycleScheduler runs a sweep at start-up and then once per interval.
// Sweeps never overlap: a slow sweep delays the next tick.
type LifecycleScheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *zap.Logger
}

// NewLifecycleScheduler creates a new LifecycleScheduler.
func NewLifecycleScheduler(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *LifecycleScheduler {
	return &LifecycleScheduler{sweeper: sweeper, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled.
func (s *LifecycleScheduler) Run(ctx context.Context) error {
	s.logger.Info("lifecycle scheduler started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("lifecycle scheduler stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *LifecycleScheduler) sweep(ctx context.Context) {
	// A sweep gets at most one interval so a hung database cannot stall the loop.
	sweepCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	start := time.Now()
	result, err := s.sweeper.RunLifecycleSweep(sweepCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("lifecycle sweep failed", zap.Error(err))
		}
		return
	}

	s.logger.Debug("lifecycle sweep tick",
		zap.Int("examined", result.Examined),
		zap.Duration("took", time.Since(start)),
	)
}
