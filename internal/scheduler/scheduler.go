// Package scheduler runs named jobs on cron schedules until stopped.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultTimeout bounds a single run when Job.Timeout is zero.
const DefaultTimeout = 30 * time.Minute

// Job is a unit of periodic work. Schedule is a standard five-field cron
// expression or a descriptor such as "@daily", "@hourly" or "@every 10m".
type Job struct {
	Name       string
	Schedule   string
	Timeout    time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// JobStatus is a snapshot of one job's history.
type JobStatus struct {
	Name      string    `json:"name"`
	Schedule  string    `json:"schedule"`
	Running   bool      `json:"running"`
	Runs      int       `json:"runs"`
	Failures  int       `json:"failures"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	NextRun   time.Time `json:"next_run,omitempty"`
}

type jobState struct {
	job     Job
	entryID cron.EntryID
	mu      sync.Mutex
	status  JobStatus
}

// Scheduler registers every job with a cron runner it owns.
type Scheduler struct {
	jobs   []*jobState
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a scheduler for jobs. Jobs without a name, a valid schedule
// or a Run func are rejected by Start.
func New(jobs ...Job) *Scheduler {
	s := &Scheduler{logger: slog.Default()}
	for _, job := range jobs {
		if job.Timeout <= 0 {
			job.Timeout = DefaultTimeout
		}
		s.jobs = append(s.jobs, &jobState{
			job:    job,
			status: JobStatus{Name: job.Name, Schedule: job.Schedule},
		})
	}
	return s
}

// SetLogger replaces the default logger. Call before Start.
func (s *Scheduler) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Start registers and launches every job. It fails if called twice or if
// a job is misconfigured.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New("scheduler already started")
	}

	schedules := make([]cron.Schedule, len(s.jobs))
	for i, js := range s.jobs {
		if js.job.Name == "" || js.job.Run == nil {
			return fmt.Errorf("invalid job %q: name and run func are required", js.job.Name)
		}
		sched, err := cron.ParseStandard(js.job.Schedule)
		if err != nil {
			return fmt.Errorf("invalid schedule %q for job %s: %w", js.job.Schedule, js.job.Name, err)
		}
		schedules[i] = sched
	}

	logger := cronLogger{logger: s.logger}
	s.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	s.ctx, s.cancel = context.WithCancel(context.Background())

	for i, js := range s.jobs {
		js := js
		js.entryID = s.cron.Schedule(schedules[i], cron.FuncJob(func() {
			s.execute(s.ctx, js)
		}))
	}

	s.cron.Start()
	s.started = true

	for _, js := range s.jobs {
		if js.job.RunOnStart {
			s.wg.Add(1)
			go func(js *jobState) {
				defer s.wg.Done()
				s.execute(s.ctx, js)
			}(js)
		}
	}

	s.logger.Info("scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.cancel()
	done := s.cron.Stop()
	s.mu.Unlock()

	<-done.Done()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// Status returns a snapshot of every job in registration order.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	runner := s.cron
	s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, js := range s.jobs {
		js.mu.Lock()
		status := js.status
		js.mu.Unlock()

		if runner != nil && js.entryID != 0 {
			status.NextRun = runner.Entry(js.entryID).Next
		}
		out = append(out, status)
	}
	return out
}

// RunNow runs the named job once on the caller's goroutine.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	for _, js := range s.jobs {
		if js.job.Name == name {
			return s.execute(ctx, js)
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

// execute runs the job with its timeout. A job that is already running,
// from RunNow or a previous trigger, is skipped rather than run twice.
func (s *Scheduler) execute(parent context.Context, js *jobState) error {
	js.mu.Lock()
	if js.status.Running {
		js.mu.Unlock()
		s.logger.Warn("job still running, skipping", "job", js.job.Name)
		return nil
	}
	js.status.Running = true
	js.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, js.job.Timeout)
	defer cancel()

	start := time.Now()
	err := s.safeRun(ctx, js.job)
	elapsed := time.Since(start)

	js.mu.Lock()
	js.status.Running = false
	js.status.Runs++
	js.status.LastRun = start
	js.status.LastError = ""
	if err != nil {
		js.status.Failures++
		js.status.LastError = err.Error()
	}
	js.mu.Unlock()

	if err != nil {
		s.logger.Error("job failed", "job", js.job.Name, "duration", elapsed, "error", err)
		return err
	}
	s.logger.Info("job finished", "job", js.job.Name, "duration", elapsed)
	return nil
}

func (s *Scheduler) safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
	}()
	return job.Run(ctx)
}

// cronLogger routes the cron runner's own messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
