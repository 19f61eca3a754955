// Package scheduler runs periodic background jobs for the relay server.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/service"
)

// StatsSource provides relay counters
type StatsSource interface {
	Snapshot() service.StatsSnapshot
}

// StatsReporter logs relay counters on a cron schedule
type StatsReporter struct {
	schedule string
	source   StatsSource
	logger   *zap.Logger
}

// NewStatsReporter creates a reporter. schedule uses the six-field cron format with seconds.
func NewStatsReporter(schedule string, source StatsSource, logger *zap.Logger) *StatsReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsReporter{schedule: schedule, source: source, logger: logger}
}

// Run schedules the report and blocks until ctx is cancelled. An empty schedule disables reporting.
func (r *StatsReporter) Run(ctx context.Context) error {
	if r.schedule == "" {
		r.logger.Info("stats reporter disabled")
		<-ctx.Done()
		return nil
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(r.schedule, r.ReportOnce); err != nil {
		return fmt.Errorf("error scheduling stats report %q: %w", r.schedule, err)
	}

	c.Start()
	r.logger.Info("stats reporter started", zap.String("schedule", r.schedule))

	<-ctx.Done()
	<-c.Stop().Done()
	r.ReportOnce()
	r.logger.Info("stats reporter stopped")
	return nil
}

// ReportOnce logs the current counters
func (r *StatsReporter) ReportOnce() {
	s := r.source.Snapshot()
	r.logger.Info("relay stats",
		zap.Int64("uploads_ok", s.UploadsOK),
		zap.Int64("uploads_failed", s.UploadsFailed),
		zap.Int64("generations_ok", s.GenerationsOK),
		zap.Int64("generations_failed", s.GenerationsFailed),
	)
}
