package usecase

import (
	"context"
	"log/slog"
	"time"

	"ChannelSnapshot/internal/ports"
)

// Scheduler wires the ticker driver with the pipeline use case.
type Scheduler struct {
	driver    ports.Scheduler
	pipeline  *Pipeline
	channelID string
	logger    *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring snapshot runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, channelID string, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, channelID: channelID, logger: logger}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		err := s.pipeline.Run(ctx, s.channelID)
		if s.logger == nil {
			return
		}
		if err != nil {
			s.logger.Error("snapshot run failed", "trigger", trigger.Format(time.RFC3339), "error", err)
			return
		}
		s.logger.Info("snapshot run finished", "trigger", trigger.Format(time.RFC3339))
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
