package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/timezone"

	"github.com/stretchr/testify/require"
)

func setupScheduler(t *testing.T, fetcher Fetcher, options SchedulerOptions) *Scheduler {
	svc := setupMonitor(t, Options{
		Fetcher:    fetcher,
		Filters:    staticFilters{},
		Recipients: staticRecipients{},
		Mailer:     &recordingMailer{},
	})
	sched := NewScheduler(svc, options)
	t.Cleanup(sched.Stop)
	return sched
}

func TestSchedulerRunsImmediately(t *testing.T) {
	sched := setupScheduler(t, staticFetcher{html: fareLabelCalendar}, SchedulerOptions{
		Interval: time.Hour,
	})

	before := timezone.Now()
	sched.Start()
	require.Eventually(t, func() bool {
		return sched.State().ExecutionCount == 1
	}, time.Second, 5*time.Millisecond)

	state := sched.State()
	require.True(t, state.Running)
	require.False(t, state.LastExecution.Before(before))
	require.Zero(t, state.RestartCount)
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	sched := setupScheduler(t, staticFetcher{html: fareLabelCalendar}, SchedulerOptions{
		Interval: time.Hour,
	})

	sched.Start()
	require.Eventually(t, func() bool {
		return sched.State().ExecutionCount == 1
	}, time.Second, 5*time.Millisecond)

	// a second Start must not spawn a second loop or rerun the cycle
	sched.Start()
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 1, sched.State().ExecutionCount)
}

func TestSchedulerStop(t *testing.T) {
	sched := setupScheduler(t, staticFetcher{html: fareLabelCalendar}, SchedulerOptions{
		Interval: time.Hour,
	})

	sched.Start()
	require.Eventually(t, func() bool {
		return sched.State().ExecutionCount == 1
	}, time.Second, 5*time.Millisecond)

	sched.Stop()
	require.False(t, sched.State().Running)
	sched.Stop() // stopping twice is fine
}

func TestWatchdogRestartsStalledScheduler(t *testing.T) {
	sched := setupScheduler(t, staticFetcher{html: fareLabelCalendar}, SchedulerOptions{
		Interval:         time.Hour,
		WatchdogInterval: 10 * time.Millisecond,
		StaleAfter:       300 * time.Millisecond,
	})

	sched.Start()
	require.Eventually(t, func() bool {
		return sched.State().ExecutionCount == 1
	}, time.Second, 5*time.Millisecond)

	// simulate a dead primary loop by backdating the liveness clock
	sched.mu.Lock()
	sched.state.LastExecution = timezone.Now().Add(-time.Minute)
	sched.mu.Unlock()

	require.Eventually(t, func() bool {
		state := sched.State()
		return state.RestartCount == 1 && state.ExecutionCount == 2
	}, time.Second, 5*time.Millisecond)

	// the restarted scheduler is healthy again: later watchdog ticks
	// must not pile up further restarts
	time.Sleep(100 * time.Millisecond)
	state := sched.State()
	require.EqualValues(t, 1, state.RestartCount)
	require.True(t, state.Running)
	require.WithinDuration(t, timezone.Now(), state.LastExecution, time.Second)
}

func TestWatchdogIgnoresStoppedScheduler(t *testing.T) {
	sched := setupScheduler(t, staticFetcher{html: fareLabelCalendar}, SchedulerOptions{
		Interval:         time.Hour,
		WatchdogInterval: 10 * time.Millisecond,
		StaleAfter:       20 * time.Millisecond,
	})

	sched.Start()
	require.Eventually(t, func() bool {
		return sched.State().ExecutionCount == 1
	}, time.Second, 5*time.Millisecond)
	sched.Stop()

	// stopped on purpose is not stalled
	time.Sleep(100 * time.Millisecond)
	state := sched.State()
	require.Zero(t, state.RestartCount)
	require.False(t, state.Running)
}

type blockingFetcher struct {
	release chan struct{}
}

func (f blockingFetcher) Fetch(ctx context.Context) (string, error) {
	<-f.release
	return "", nil
}

func TestTriggerSkipsWhileCycleInFlight(t *testing.T) {
	release := make(chan struct{})
	sched := setupScheduler(t, blockingFetcher{release: release}, SchedulerOptions{
		Interval: time.Hour,
	})
	defer close(release)

	ctx := context.Background()
	go sched.trigger(ctx)
	require.Eventually(t, func() bool {
		return sched.State().ExecutionCount == 1
	}, time.Second, 5*time.Millisecond)

	// the first cycle is still blocked in fetch; an overlapping tick
	// must be dropped, not queued
	sched.trigger(ctx)
	require.EqualValues(t, 1, sched.State().ExecutionCount)
}
