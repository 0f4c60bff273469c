package monitor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"craft-sleuth/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Engine runs one reconciliation cycle.
type Engine interface {
	Run(ctx context.Context) (*reconcile.Report, error)
}

// RunStatus describes the most recent run.
type RunStatus struct {
	Running    bool              `json:"running"`
	StartedAt  *time.Time        `json:"started_at,omitempty"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
	Report     *reconcile.Report `json:"report,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Runner serializes engine runs. Callers arriving while a run is in flight
// share its result instead of starting a second one.
type Runner struct {
	engine Engine
	logger *zap.Logger
	group  singleflight.Group

	mu     sync.RWMutex
	status RunStatus
	now    func() time.Time
}

// NewRunner wraps an engine.
func NewRunner(engine Engine, logger *zap.Logger) *Runner {
	return &Runner{engine: engine, logger: logger, now: time.Now}
}

// Run executes a cycle, or joins the one already running.
func (r *Runner) Run(ctx context.Context) (*reconcile.Report, error) {
	v, err, shared := r.group.Do("run", func() (result any, err error) {
		started := r.now()
		r.mu.Lock()
		r.status.Running = true
		r.status.StartedAt = &started
		r.mu.Unlock()

		var report *reconcile.Report
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic: %v\n\n%s", rec, debug.Stack())
			}
			finished := r.now()
			r.mu.Lock()
			r.status = RunStatus{StartedAt: &started, FinishedAt: &finished, Report: report}
			if err != nil {
				r.status.Error = err.Error()
			}
			r.mu.Unlock()
			result = report
		}()

		report, err = r.engine.Run(ctx)
		return report, err
	})
	if shared {
		r.logger.Debug("Joined a run already in progress")
	}

	report, _ := v.(*reconcile.Report)
	return report, err
}

// Status returns a copy of the latest run status.
func (r *Runner) Status() RunStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}
