package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"craft-sleuth/core/config"
	"craft-sleuth/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Send(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

func testApp(subName string) *app {
	cfg := &config.Config{}
	cfg.Bot = reconcile.Config{Name: "CraftSleuthBot", Operator: "u/operator", SubName: subName, MaxDays: 7}
	return &app{cfg: cfg, logger: zap.NewNop()}
}

func TestGuardRun(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		a, n := testApp("crafts"), &recordingNotifier{}

		err := a.guardRun(context.Background(), n, func() error { return nil })
		assert.NoError(t, err)
		assert.Empty(t, n.messages)
	})

	t.Run("ReportsFailure", func(t *testing.T) {
		a, n := testApp("crafts"), &recordingNotifier{}
		failure := errors.New("ingestion failed")

		err := a.guardRun(context.Background(), n, func() error { return failure })
		assert.ErrorIs(t, err, failure)
		require.Len(t, n.messages, 1)
		assert.Equal(t, reconcile.FormatFailureNotification("CraftSleuthBot", "u/operator", failure), n.messages[0])
	})

	t.Run("ReportsPanic", func(t *testing.T) {
		a, n := testApp("crafts"), &recordingNotifier{}

		err := a.guardRun(context.Background(), n, func() error { panic("nil flair map") })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic: nil flair map")
		require.Len(t, n.messages, 1)
		assert.Contains(t, n.messages[0], "Error with 'CraftSleuthBot'")
		assert.Contains(t, n.messages[0], "nil flair map")
		assert.Contains(t, n.messages[0], "Please report to u/operator")
	})

	t.Run("NotConfiguredSendsOnlyNotice", func(t *testing.T) {
		a, n := testApp(""), &recordingNotifier{}
		ctx := context.Background()

		err := a.guardRun(ctx, n, func() error { return a.checkConfigured(ctx, n) })
		assert.ErrorIs(t, err, reconcile.ErrNotConfigured)
		assert.Equal(t, []string{reconcile.FormatConfigurationNotice("CraftSleuthBot")}, n.messages)
	})

	t.Run("InterruptNotReported", func(t *testing.T) {
		a, n := testApp("crafts"), &recordingNotifier{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := a.guardRun(ctx, n, func() error { return fmt.Errorf("sweep failed: %w", ctx.Err()) })
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, n.messages)
	})

	t.Run("CanceledWithoutInterruptReported", func(t *testing.T) {
		a, n := testApp("crafts"), &recordingNotifier{}

		err := a.guardRun(context.Background(), n, func() error { return context.Canceled })
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, n.messages, 1)
	})
}
