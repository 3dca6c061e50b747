package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"expensetracker/internal/log"
)

// Scheduler runs MirrorWorker.Resync on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	worker *MirrorWorker
	logger *log.Logger
}

// NewScheduler accepts standard five-field cron specs and descriptors such
// as "@every 1h" or "@daily".
func NewScheduler(spec string, w *MirrorWorker, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		worker: w,
		logger: w.logger,
	}
	if timeout <= 0 {
		timeout = time.Minute
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.logger.InfoContext(ctx, "Executing scheduled resync")
		if err := s.worker.Resync(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Scheduled resync failed", log.FieldError, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("add cron job %q: %w", spec, err)
	}
	return s, nil
}

// Run starts the scheduler and blocks until ctx is done. In-flight jobs are
// allowed to finish before it returns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
