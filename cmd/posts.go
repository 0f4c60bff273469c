package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"craft-sleuth/core/reconcile"
	"craft-sleuth/feature/posts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listLimit    int
	purgeArchive bool
	yesConfirm   bool
)

// postsCmd is the parent command for tracked post maintenance.
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Inspect and maintain the tracked posts store",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked posts",
	RunE:  runPostsList,
}

var postsPurgeCmd = &cobra.Command{
	Use:   "purge <post_id>",
	Short: "Stop tracking a post",
	Long: `Deletes one tracked post from the store.

Examples:
  # Asks for confirmation
  posts purge 1a2b3c

  # Non-interactive, keep a copy in the archive
  posts purge 1a2b3c --archive --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runPostsPurge,
}

var postsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the tracked posts table schema",
	RunE:  runPostsCheck,
}

func init() {
	postsListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of posts to list (0 = all)")
	postsPurgeCmd.Flags().BoolVar(&purgeArchive, "archive", false, "Archive the post before deleting it")
	postsPurgeCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")

	postsCmd.AddCommand(postsListCmd, postsPurgeCmd, postsCheckCmd)
	RootCmd.AddCommand(postsCmd)
}

func runPostsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, store, err := openPosts()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	list, err := store.List(ctx, listLimit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	for _, p := range list {
		a.logger.Info("Tracked post",
			zap.String("post_id", p.PostID),
			zap.String("username", p.Username),
			zap.String("title", p.Title),
			zap.Bool("edited", p.PostLastEdit != nil),
			zap.Stringp("deletion_method", p.DeletionMethod),
			zap.Time("record_created", p.RecordCreated),
			zap.String("link", reconcile.Permalink(a.cfg.Bot.SubName, p.PostID)),
		)
	}
	a.logger.Info("Tracked posts", zap.Int("shown", len(list)), zap.Int64("total", total))
	return nil
}

func runPostsPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, store, err := openPosts()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	post, err := store.Get(ctx, args[0])
	if errors.Is(err, posts.ErrNotFound) {
		return fmt.Errorf("no tracked post with id %s", args[0])
	}
	if err != nil {
		return err
	}

	a.logger.Info("Post to purge", zap.String("post_id", post.PostID), zap.String("title", post.Title))
	if !confirmDestructiveAction() {
		a.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	if purgeArchive {
		if !a.cfg.Storage.Enabled {
			return errors.New("archive requested but STORAGE_ENABLED is false")
		}
		arch, err := a.archiver(ctx)
		if err != nil {
			return err
		}
		if err := arch.Archive(ctx, *post, reconcile.ActionUntrack); err != nil {
			return err
		}
	}

	if err := store.Delete(ctx, post.PostID); err != nil {
		return err
	}
	a.logger.Info("Post purged", zap.String("post_id", post.PostID))
	return nil
}

func runPostsCheck(cmd *cobra.Command, args []string) error {
	a, store, err := openPosts()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if err := store.Check(cmd.Context()); err != nil {
		return err
	}
	a.logger.Info("Tracked posts table is valid", zap.String("table", posts.TableName))
	return nil
}

func openPosts() (*app, *posts.Store, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	store, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	return a, store, nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
