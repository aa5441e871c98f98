package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work. The context is cancelled when the scheduler stops.
type Job func(ctx context.Context)

// Scheduler runs jobs on fixed intervals and one-shot delays. Runs of the same job may overlap.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	timers []*time.Timer
	wg     sync.WaitGroup
}

func New() *Scheduler {
	logger := slogLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Every runs job repeatedly, interval apart. Intervals below one second are rounded up to one second.
func (s *Scheduler) Every(interval time.Duration, name string, job Job) {
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		s.run(name, job)
	}))
}

// After runs job once, delay after the call.
func (s *Scheduler) After(delay time.Duration, name string, job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wg.Add(1)

	t := time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.run(name, job)
	})

	s.timers = append(s.timers, t)
}

// EveryAfter runs job once after delay, then every interval. The warm-up run is named name-warmup.
func (s *Scheduler) EveryAfter(delay, interval time.Duration, name string, job Job) {
	s.After(delay, name+"-warmup", job)
	s.Every(interval, name, job)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents further runs, cancels the context of running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for _, t := range s.timers {
		if t.Stop() {
			s.wg.Done()
		}
	}
	s.timers = nil
	s.mu.Unlock()

	s.cancel()

	<-s.cron.Stop().Done()
	s.wg.Wait()
}

func (s *Scheduler) run(name string, job Job) {
	if s.ctx.Err() != nil {
		return
	}

	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduled job panicked", "job", name, "panic", r)
		}
	}()

	slog.Debug("scheduled job starting", "job", name)
	job(s.ctx)
	slog.Info("scheduled job finished", "job", name, "duration", time.Since(start))
}

// slogLogger adapts slog to cron.Logger.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
