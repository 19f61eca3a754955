package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/service"
)

type staticStats service.StatsSnapshot

func (s staticStats) Snapshot() service.StatsSnapshot {
	return service.StatsSnapshot(s)
}

func TestReportOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewStatsReporter("@every 1h", staticStats{UploadsOK: 3, GenerationsFailed: 1}, zap.New(core))

	r.ReportOnce()

	entries := logs.FilterMessage("relay stats").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(3), fields["uploads_ok"])
	assert.Equal(t, int64(1), fields["generations_failed"])
}

func TestRunRejectsInvalidSchedule(t *testing.T) {
	r := NewStatsReporter("not a schedule", staticStats{}, nil)
	err := r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunReportsOnShutdown(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewStatsReporter("@every 1h", staticStats{GenerationsOK: 2}, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("stats reporter started").Len() == 1
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reporter did not stop")
	}
	assert.Equal(t, 1, logs.FilterMessage("relay stats").Len())
}

func TestRunDisabled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, NewStatsReporter("", staticStats{}, nil).Run(ctx))
}
