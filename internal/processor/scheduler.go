package processor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// Runner runs one ingestion pass
type Runner interface {
	IngestNewBugs(ctx context.Context) (*models.IngestStats, error)
}

// Scheduler runs ingestion immediately and then on a fixed interval
type Scheduler struct {
	runner Runner
	every  time.Duration
	logger *zap.Logger
}

// NewScheduler creates a scheduler for interval strings like "24h" or "7d"
func NewScheduler(runner Runner, every string, logger *zap.Logger) (*Scheduler, error) {
	d, err := ParseInterval(every)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	return &Scheduler{runner: runner, every: d, logger: logger}, nil
}

// Run blocks until ctx is cancelled. A failed run is logged and retried on
// the next tick.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("ingestion scheduler started", zap.Duration("every", s.every))

	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	for {
		s.runOnce(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("ingestion scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	stats, err := s.runner.IngestNewBugs(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("scheduled ingestion failed", zap.Error(err))
		}
		return
	}
	s.logger.Info("scheduled ingestion finished",
		zap.Int("new", stats.New),
		zap.Int("indexed", stats.Indexed),
		zap.Int("duration_ms", stats.DurationMs))
}

// ParseInterval parses duration strings like "24h", "90m", "7d"
func ParseInterval(s string) (time.Duration, error) {
	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok && days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, err
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive: %s", s)
	}
	return d, nil
}
