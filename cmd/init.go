package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// initCmd prepares the store and the archive bucket.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the tracked posts table and the archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, store, err := openPosts()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := store.Init(ctx); err != nil {
			return err
		}
		a.logger.Info("Store ready", zap.String("driver", a.cfg.Database.Driver), zap.String("name", a.cfg.Database.Name))

		arch, err := a.archiver(ctx)
		if err != nil {
			return err
		}
		if arch != nil {
			a.logger.Info("Archive ready", zap.String("bucket", a.cfg.Storage.Bucket))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
