package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/timezone"
)

// SchedulerState is the health surface external monitoring reads.
type SchedulerState struct {
	LastExecution  time.Time `json:"last_execution"`
	ExecutionCount int64     `json:"execution_count"`
	RestartCount   int64     `json:"restart_count"`
	Running        bool      `json:"running"`
}

type SchedulerOptions struct {
	// how often a monitoring cycle runs
	Interval time.Duration
	// how often the watchdog verifies the primary loop is alive
	WatchdogInterval time.Duration
	// how old LastExecution may get before the watchdog restarts the
	// scheduler. Must exceed Interval (one slow cycle is not a stall)
	// and the fetch timeout (or the watchdog fires mid-cycle).
	StaleAfter time.Duration
}

func (o SchedulerOptions) withDefaults() SchedulerOptions {
	if o.Interval == 0 {
		o.Interval = 15 * time.Minute
	}
	if o.WatchdogInterval == 0 {
		o.WatchdogInterval = 5 * time.Minute
	}
	if o.StaleAfter == 0 {
		o.StaleAfter = 20 * time.Minute
	}
	return o
}

// Scheduler drives periodic monitoring cycles and owns the watchdog
// that restarts the primary loop if it silently dies. Construct one
// per process; there are deliberately no package-level singletons so
// schedulers stay independently testable.
type Scheduler struct {
	svc     Service
	options SchedulerOptions

	mu             sync.Mutex
	state          SchedulerState
	cancelPrimary  context.CancelFunc
	cancelWatchdog context.CancelFunc

	busy atomic.Bool
}

func NewScheduler(svc Service, options SchedulerOptions) *Scheduler {
	return &Scheduler{
		svc:     svc,
		options: options.withDefaults(),
	}
}

// Start is idempotent: starting a running scheduler is a logged no-op.
// The first cycle runs immediately rather than one interval from now.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.state.Running {
		s.mu.Unlock()
		slog.Info("scheduler already running")
		return
	}
	s.state.Running = true

	primaryCtx, cancelPrimary := context.WithCancel(context.Background())
	s.cancelPrimary = cancelPrimary

	startWatchdog := s.cancelWatchdog == nil
	var watchdogCtx context.Context
	if startWatchdog {
		watchdogCtx, s.cancelWatchdog = context.WithCancel(context.Background())
	}
	s.mu.Unlock()

	slog.Info("starting monitoring scheduler", "interval", s.options.Interval)
	go s.primaryLoop(primaryCtx)
	if startWatchdog {
		go s.watchdogLoop(watchdogCtx)
	}
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Running {
		return
	}
	s.state.Running = false
	if s.cancelPrimary != nil {
		s.cancelPrimary()
		s.cancelPrimary = nil
	}
	if s.cancelWatchdog != nil {
		s.cancelWatchdog()
		s.cancelWatchdog = nil
	}
	slog.Info("stopped monitoring scheduler")
}

func (s *Scheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) primaryLoop(ctx context.Context) {
	s.trigger(ctx)

	ticker := time.NewTicker(s.options.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

// trigger runs one cycle, skipping the tick if the previous cycle is
// still in flight: cycles must never overlap or the once-per-cycle
// filter snapshot and run log contracts break.
func (s *Scheduler) trigger(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		slog.WarnContext(ctx, "previous cycle still in flight, skipping tick")
		return
	}
	defer s.busy.Store(false)

	// the liveness clock resets at invocation, before cycle logic,
	// so a cycle that hangs still proves the timer fired
	s.mu.Lock()
	s.state.LastExecution = timezone.Now()
	s.state.ExecutionCount++
	s.mu.Unlock()

	s.svc.RunCheck(ctx)
}

func (s *Scheduler) watchdogLoop(ctx context.Context) {
	ticker := time.NewTicker(s.options.WatchdogInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkLiveness(ctx)
		}
	}
}

// checkLiveness guards against the primary loop dying without crashing
// the process. It is not a cycle-level retry: a restart only revives
// the timer, the failed work waits for the next interval.
func (s *Scheduler) checkLiveness(ctx context.Context) {
	s.mu.Lock()
	running := s.state.Running
	last := s.state.LastExecution
	s.mu.Unlock()

	if !running {
		return
	}
	elapsed := timezone.Now().Sub(last)
	if elapsed <= s.options.StaleAfter {
		return
	}

	slog.WarnContext(ctx, "scheduler stalled, forcing restart",
		"elapsed", elapsed,
		"stale_after", s.options.StaleAfter,
	)
	s.Stop()
	s.mu.Lock()
	s.state.RestartCount++
	s.mu.Unlock()
	s.Start()
}
