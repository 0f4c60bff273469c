package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"craft-sleuth/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd performs a single reconciliation run.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one ingestion and sweep pass",
	Long: `Runs one ingestion pass over the subreddit's new posts followed by one
sweep over every tracked post, then exits. Meant to be started by cron.

Unexpected failures are reported to the operator through the configured
notification sinks and exit with status 1. An interrupt exits with status 0.`,
	RunE: runOnce,
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	notifier, err := a.notifier()
	if err != nil {
		return err
	}

	return a.guardRun(ctx, notifier, func() error {
		if err := a.checkConfigured(ctx, notifier); err != nil {
			return err
		}

		store, err := a.openStore()
		if err != nil {
			return err
		}
		engine, err := a.engine(ctx, store, notifier)
		if err != nil {
			return err
		}

		report, err := engine.Run(ctx)
		if err != nil {
			return err
		}

		a.logger.Debug("Run report", zap.Any("report", report))
		return nil
	})
}

// guardRun calls fn and reports its failure, or a panic, to the operator.
// A missing configuration and an interrupted context are not reported.
func (a *app) guardRun(ctx context.Context, notifier reconcile.Notifier, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n\n%s", r, debug.Stack())
		}
		if err == nil || errors.Is(err, reconcile.ErrNotConfigured) {
			return
		}
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return
		}
		a.reportFailure(ctx, notifier, err)
	}()
	return fn()
}
