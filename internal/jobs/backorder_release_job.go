package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BackorderReleaseJob periodically sweeps orders parked in Backorder and
// returns the ones whose stock can now be fully reserved to the queue.
type BackorderReleaseJob struct {
	handler  commands.ReleaseBackordersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBackorderReleaseJob creates a job that runs the backorder sweep on the
// given cron schedule (with a seconds field).
func NewBackorderReleaseJob(
	handler commands.ReleaseBackordersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *BackorderReleaseJob {
	return &BackorderReleaseJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "backorder_release_job"),
	}
}

// Start begins the backorder sweep on the configured schedule.
func (j *BackorderReleaseJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReleaseBackordersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Backorder release job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backorder release job started", "schedule", j.schedule)
	return nil
}

// Stop stops the backorder sweep.
func (j *BackorderReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backorder release job stopped")
}
