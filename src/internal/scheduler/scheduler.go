package scheduler

import (
	"context"
	"time"

	"github.com/api-sage/fd-account-processor/src/internal/logger"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/service_interfaces"
)

// Scheduler fires the daily batch chain at a fixed UTC hour: accrual,
// then capitalization, then maturity. Order matters; capitalization
// consumes the day's accruals and maturity settles whatever remains.
type Scheduler struct {
	accrual        service_interfaces.BatchRunner
	capitalization service_interfaces.BatchRunner
	maturity       service_interfaces.BatchRunner
	hourUTC        int
}

func New(
	accrual service_interfaces.BatchRunner,
	capitalization service_interfaces.BatchRunner,
	maturity service_interfaces.BatchRunner,
	hourUTC int,
) *Scheduler {
	return &Scheduler{
		accrual:        accrual,
		capitalization: capitalization,
		maturity:       maturity,
		hourUTC:        hourUTC,
	}
}

// Start blocks until ctx is cancelled, running the chain once per day
// at the configured hour.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		wait := s.untilNextRun(time.Now().UTC())
		logger.Info("scheduler sleeping until next batch window", logger.Fields{
			"waitSeconds": int(wait.Seconds()),
			"hourUTC":     s.hourUTC,
		})

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("scheduler stopped", nil)
			return
		case <-timer.C:
			s.RunChain(ctx)
		}
	}
}

// RunChain executes the three batch steps in order. A failed step
// logs and stops the chain; the next scheduled window retries from
// the top, and idempotency markers make the retry safe.
func (s *Scheduler) RunChain(ctx context.Context) {
	steps := []struct {
		name   string
		runner service_interfaces.BatchRunner
	}{
		{"accrual", s.accrual},
		{"capitalization", s.capitalization},
		{"maturity", s.maturity},
	}

	for _, step := range steps {
		report, err := step.runner.Run(ctx)
		if err != nil {
			logger.Error("scheduler batch step failed", err, logger.Fields{
				"step": step.name,
			})
			return
		}
		logger.Info("scheduler batch step finished", logger.Fields{
			"step":      step.name,
			"succeeded": report.Succeeded,
			"skipped":   report.Skipped,
			"errored":   report.Errored,
		})
	}
}

func (s *Scheduler) untilNextRun(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
