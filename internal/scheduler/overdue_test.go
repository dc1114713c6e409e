package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mrlokans/smartlibrary/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingTrigger struct {
	sources []string
	err     error
}

func (r *recordingTrigger) TriggerOverdueScan(ctx context.Context, source string) error {
	r.sources = append(r.sources, source)
	return r.err
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 8 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("every morning"))
	assert.Error(t, ValidateSchedule("0 0 8 * * *"), "seconds field is not accepted")
}

func TestOverdueSchedulerStartStop(t *testing.T) {
	s := NewOverdueScheduler(&recordingTrigger{}, config.Overdue{ScanSchedule: "0 8 * * *"}, time.UTC, nil)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	// Second start is a no-op.
	require.NoError(t, s.Start(context.Background()))

	next := s.NextRun()
	require.NotNil(t, next)
	assert.Equal(t, 8, next.In(time.UTC).Hour())
	assert.Equal(t, 0, next.Minute())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())

	// Stopping twice is harmless.
	s.Stop()
}

func TestOverdueSchedulerUsesLibraryTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	s := NewOverdueScheduler(&recordingTrigger{}, config.Overdue{ScanSchedule: "0 8 * * *"}, loc, nil)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	next := s.NextRun()
	require.NotNil(t, next)
	assert.Equal(t, 8, next.In(loc).Hour())
	assert.Equal(t, 5, next.In(time.UTC).Hour())
}

func TestOverdueSchedulerInvalidSchedule(t *testing.T) {
	s := NewOverdueScheduler(&recordingTrigger{}, config.Overdue{ScanSchedule: "bogus"}, nil, nil)

	err := s.Start(context.Background())
	assert.ErrorContains(t, err, "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestOverdueSchedulerStopsWithContext(t *testing.T) {
	s := NewOverdueScheduler(&recordingTrigger{}, config.Overdue{ScanSchedule: "0 8 * * *"}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestOverdueSchedulerRunNow(t *testing.T) {
	trigger := &recordingTrigger{}
	s := NewOverdueScheduler(trigger, config.Overdue{ScanSchedule: "0 8 * * *"}, nil, nil)

	require.NoError(t, s.RunNow(context.Background(), "api"))
	assert.Equal(t, []string{"api"}, trigger.sources)

	trigger.err = errors.New("queue closed")
	assert.ErrorContains(t, s.RunNow(context.Background(), "api"), "queue closed")
}

func TestScheduledRunLogsFailure(t *testing.T) {
	trigger := &recordingTrigger{err: errors.New("boom")}
	s := NewOverdueScheduler(trigger, config.Overdue{}, nil, nil)

	s.run(context.Background())
	assert.Equal(t, []string{SourceCron}, trigger.sources)
}

func TestTriggerFunc(t *testing.T) {
	var got string
	f := TriggerFunc(func(ctx context.Context, source string) error {
		got = source
		return nil
	})

	require.NoError(t, f.TriggerOverdueScan(context.Background(), "cli"))
	assert.Equal(t, "cli", got)
}
