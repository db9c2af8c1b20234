// Package scheduler runs the periodic maintenance jobs of the server.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Purger removes audit entries older than the retention period.
type Purger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
}

func New() *Scheduler {
	logger := logrus.StandardLogger()
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.PrintfLogger(logger)), cron.WithChain(cron.Recover(cron.PrintfLogger(logger)))),
		logger: logger,
	}
}

// AddAuditPurge runs p on the cron spec, deleting entries older than
// retentionDays.
func (s *Scheduler) AddAuditPurge(spec string, retentionDays int64, p Purger) error {
	if retentionDays <= 0 {
		return fmt.Errorf("audit retention must be positive, got %d days", retentionDays)
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour

	_, err := s.cron.AddFunc(spec, func() {
		PurgeOnce(context.Background(), p, retention, s.logger)
	})
	if err != nil {
		return fmt.Errorf("invalid audit purge schedule %q: %w", spec, err)
	}

	s.logger.WithFields(logrus.Fields{"schedule": spec, "retention_days": retentionDays}).Info("Audit purge scheduled")
	return nil
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stopped before running jobs finished")
	}
}

// PurgeOnce runs a single purge and logs the outcome.
func PurgeOnce(ctx context.Context, p Purger, retention time.Duration, logger *logrus.Logger) int64 {
	n, err := p.Purge(ctx, retention)
	if err != nil {
		logger.WithError(err).Error("Audit purge failed")
		return 0
	}
	return n
}
