package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"craft-sleuth/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "craft-sleuth",
	Short: "Subreddit moderation assistant",
	Long: `craft-sleuth watches one subreddit, records new posts and reports
posts that get removed or deleted to the moderators. Tracked posts are
purged once they expire, get resolved or lose their author.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. An interrupt exits with status 0, any other
// failure with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()

	if err == nil {
		return
	}

	// Console + debug gives ISO8601 timestamps for CLI errors.
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer os.Exit(exitCode(err, interrupted))
	defer l.Sync()

	if isInterrupt(err, interrupted) {
		l.Info("Program interrupted by user")
		return
	}
	l.Error("command failed", zap.Error(err))
}

func isInterrupt(err error, interrupted bool) bool {
	return interrupted && errors.Is(err, context.Canceled)
}

func exitCode(err error, interrupted bool) int {
	if err == nil || isInterrupt(err, interrupted) {
		return 0
	}
	return 1
}
