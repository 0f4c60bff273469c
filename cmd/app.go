package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"craft-sleuth/core/config"
	"craft-sleuth/core/database"
	"craft-sleuth/core/logger"
	"craft-sleuth/core/reconcile"
	"craft-sleuth/core/storage"
	"craft-sleuth/feature/archive"
	"craft-sleuth/feature/notify"
	"craft-sleuth/feature/posts"
	"craft-sleuth/feature/reddit"

	"go.uber.org/zap"
)

// notifyTimeout bounds operator reports sent while shutting down.
const notifyTimeout = 30 * time.Second

// app holds the collaborators shared by the commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// newApp loads the configuration and builds the logger.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	return &app{cfg: cfg, logger: l.With(zap.String("bot", cfg.Bot.Name))}, nil
}

// openStore connects to the database and wraps it in the posts store.
func (a *app) openStore() (*posts.Store, error) {
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return posts.NewStore(db), nil
}

// redditClient builds the Reddit API client for the configured subreddit.
func (a *app) redditClient() *reddit.Client {
	return reddit.NewClient(a.cfg.Reddit, a.cfg.Bot.SubName, a.logger)
}

// notifier builds the configured notification sinks.
func (a *app) notifier() (*notify.Multi, error) {
	modmail := reddit.NewModmailNotifier(a.redditClient(), a.cfg.Bot.Name)
	n, err := notify.New(a.cfg.Notify, modmail, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure notifications: %w", err)
	}
	return n, nil
}

// archiver returns the purged posts archive, or nil when it is disabled.
func (a *app) archiver(ctx context.Context) (*archive.Archiver, error) {
	if !a.cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, a.cfg.Storage.Bucket, a.cfg.Storage.Region); err != nil {
		return nil, err
	}
	return archive.New(client, a.cfg.Storage.Bucket, a.cfg.Storage.Prefix), nil
}

// engine wires the reconciliation engine. The bot configuration must be valid.
func (a *app) engine(ctx context.Context, store reconcile.Store, notifier reconcile.Notifier) (*reconcile.Engine, error) {
	e := reconcile.NewEngine(a.redditClient(), store, notifier, a.cfg.Bot.Options(), a.logger)

	arch, err := a.archiver(ctx)
	if err != nil {
		return nil, err
	}
	if arch != nil {
		e.SetArchiver(arch)
		a.logger.Info("Archiving purged posts", zap.String("bucket", a.cfg.Storage.Bucket))
	}
	return e, nil
}

// reportFailure sends the operator failure report. Delivery problems are logged.
func (a *app) reportFailure(ctx context.Context, notifier reconcile.Notifier, err error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	msg := reconcile.FormatFailureNotification(a.cfg.Bot.Name, a.cfg.Bot.Operator, err)
	if sendErr := notifier.Send(ctx, msg); sendErr != nil {
		a.logger.Warn("Failed to report error to the operator", zap.Error(sendErr))
	}
}

// checkConfigured validates the bot settings. An empty subreddit sends the
// configuration notice before failing.
func (a *app) checkConfigured(ctx context.Context, notifier reconcile.Notifier) error {
	err := a.cfg.Bot.Validate()
	if errors.Is(err, reconcile.ErrNotConfigured) {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if sendErr := notifier.Send(ctx, reconcile.FormatConfigurationNotice(a.cfg.Bot.Name)); sendErr != nil {
			a.logger.Warn("Failed to send configuration notice", zap.Error(sendErr))
		}
	}
	return err
}
