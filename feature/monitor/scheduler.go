package monitor

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers runs on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	runner *Runner
	logger *zap.Logger
	onFail func(ctx context.Context, err error)
}

// NewScheduler creates a scheduler. onFail receives every failed run except
// those interrupted by cancellation; it may be nil.
func NewScheduler(runner *Runner, logger *zap.Logger, onFail func(ctx context.Context, err error)) *Scheduler {
	cl := cronLogger{logger: logger.Sugar()}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		runner: runner,
		logger: logger,
		onFail: onFail,
	}
}

// Schedule registers the run job. ctx is handed to every run.
func (s *Scheduler) Schedule(ctx context.Context, spec string) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		s.Trigger(ctx)
	})
}

// Trigger performs one run immediately.
func (s *Scheduler) Trigger(ctx context.Context) {
	report, err := s.runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Info("Run interrupted")
			return
		}
		s.logger.Error("Scheduled run failed", zap.Error(err))
		if s.onFail != nil {
			s.onFail(ctx, err)
		}
		return
	}
	s.logger.Info("Scheduled run finished", zap.String("run_id", report.RunID), zap.Int("deleted", report.Deleted))
}

// Start starts the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and returns a context done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger routes cron's own logging to zap.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
