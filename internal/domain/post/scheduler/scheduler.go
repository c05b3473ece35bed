package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vadim/linkedin-mcp/internal/domain/post/policy"
	"github.com/vadim/linkedin-mcp/internal/metrics"
)

const (
	DefaultSpec    = "@every 1m"
	DefaultTimeout = 5 * time.Minute
)

// DuePostProcessor defines the interface for publishing due posts
type DuePostProcessor interface {
	ProcessDuePosts(ctx context.Context) (*policy.ProcessResult, error)
}

// Config holds the schedule of the publishing job
type Config struct {
	// Spec is a cron expression or descriptor such as "@every 1m"
	Spec     string
	Timezone string
	// Timeout bounds a single run
	Timeout time.Duration
}

// Scheduler periodically publishes scheduled posts that are due
type Scheduler struct {
	processor DuePostProcessor
	cron      *cron.Cron
	spec      string
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics

	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	mu      sync.Mutex
}

// New creates a new scheduler. Runs never overlap: a tick that fires while the
// previous run is still going is skipped.
func New(processor DuePostProcessor, cfg Config, logger *slog.Logger, m *metrics.Metrics) (*Scheduler, error) {
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		processor: processor,
		spec:      cfg.Spec,
		timeout:   cfg.Timeout,
		logger:    logger,
		metrics:   m,
		ctx:       context.Background(),
	}

	cl := cronLogger{logger: logger}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if _, err := s.cron.AddFunc(cfg.Spec, s.tick); err != nil {
		return nil, fmt.Errorf("failed to schedule publishing job %q: %w", cfg.Spec, err)
	}

	return s, nil
}

// Start starts the scheduler. Runs stop when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.cron.Start()
	s.logger.Info("publishing scheduler started", "spec", s.spec)
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("publishing scheduler stopped")
}

// NextRun returns the next planned run, zero before Start
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	s.RunOnce(ctx)
}

// RunOnce processes due posts immediately
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Debug("processing due posts")
	start := time.Now()

	res, err := s.processor.ProcessDuePosts(ctx)
	due := 0
	if res != nil {
		due = res.Due
		for _, id := range res.Published {
			s.metrics.IncPublish(metrics.SourceScheduler, nil)
			s.logger.Info("published scheduled post", "post_id", id)
		}
		for _, f := range res.Failed {
			s.metrics.IncPublish(metrics.SourceScheduler, f.Err)
			s.logger.Error("failed to publish scheduled post", "post_id", f.PostID, "error", f.Err)
		}
	}
	s.metrics.ObserveSchedulerRun(due, err)

	if err != nil {
		s.logger.Error("failed to process due posts", "error", err)
		return
	}
	if due > 0 {
		s.logger.Info("processed due posts", "due", due, "duration", time.Since(start))
	}
}

// cronLogger routes cron's internal logging to slog
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
