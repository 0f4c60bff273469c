package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// archiveCmd browses the archive of purged posts.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse the archive of purged posts",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived post ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		arch, err := a.archiver(ctx)
		if err != nil {
			return err
		}
		if arch == nil {
			return errors.New("archive is disabled (STORAGE_ENABLED=false)")
		}

		ids, err := arch.List(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("Archived posts", zap.Int("count", len(ids)), zap.Strings("post_ids", ids))
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <post_id>",
	Short: "Show one archived post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		arch, err := a.archiver(ctx)
		if err != nil {
			return err
		}
		if arch == nil {
			return errors.New("archive is disabled (STORAGE_ENABLED=false)")
		}

		entry, err := arch.Get(ctx, args[0])
		if err != nil {
			return err
		}
		a.logger.Info("Archived post",
			zap.String("post_id", entry.Post.PostID),
			zap.String("username", entry.Post.Username),
			zap.String("title", entry.Post.Title),
			zap.String("text", entry.Post.Text),
			zap.Stringp("post_last_edit", entry.Post.PostLastEdit),
			zap.Stringp("deletion_method", entry.Post.DeletionMethod),
			zap.String("reason", string(entry.Reason)),
			zap.Time("purged_at", entry.PurgedAt),
		)
		return nil
	},
}

func init() {
	archiveCmd.AddCommand(archiveListCmd, archiveShowCmd)
	RootCmd.AddCommand(archiveCmd)
}
