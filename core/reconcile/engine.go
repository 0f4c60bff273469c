package reconcile

import (
	"context"
	"fmt"
	"time"

	"craft-sleuth/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs the ingestion and sweep passes against its collaborators.
type Engine struct {
	source   Source
	store    Store
	notifier Notifier
	archiver Archiver
	opts     Options
	logger   *zap.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewEngine creates an engine. The archiver is optional; see SetArchiver.
func NewEngine(source Source, store Store, notifier Notifier, opts Options, logger *zap.Logger) *Engine {
	if opts.UntrackedFlairs == nil {
		opts.UntrackedFlairs = NewFlairSet()
	}
	return &Engine{
		source:   source,
		store:    store,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// SetArchiver installs a sink that receives every purged post.
func (e *Engine) SetArchiver(a Archiver) {
	e.archiver = a
}

// Run prepares the store and performs one ingestion pass followed by one sweep.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	l := e.logger.With(zap.String("run_id", report.RunID), zap.String("sub", e.opts.SubName))

	if err := e.store.Init(ctx); err != nil {
		return report, fmt.Errorf("failed to initialize store: %w", err)
	}

	l.Info("Starting ingestion pass", zap.Int("max_posts", e.opts.MaxPosts))
	if err := e.Ingest(ctx, report); err != nil {
		return report, fmt.Errorf("ingestion failed: %w", err)
	}

	l.Info("Starting sweep pass", zap.Int("max_days", e.opts.MaxDays))
	if err := e.Sweep(ctx, report); err != nil {
		return report, fmt.Errorf("sweep failed: %w", err)
	}

	l.Info("Program finished successfully",
		zap.Int("ingested", report.Ingested),
		zap.Int("removed_on_ingest", report.RemovedOnIngest),
		zap.Int("edited", report.Edited),
		zap.Int("fetch_errors", report.FetchErrors),
	)
	l.Info("Total posts deleted", zap.Int("count", report.Deleted))
	return report, nil
}

// Ingest walks the new-posts feed and starts tracking eligible posts.
func (e *Engine) Ingest(ctx context.Context, report *Report) error {
	stored, err := e.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored posts: %w", err)
	}
	known := make(map[string]struct{}, len(stored))
	for _, p := range stored {
		known[p.PostID] = struct{}{}
	}

	feed, err := e.source.ListNew(ctx, e.opts.MaxPosts)
	if err != nil {
		return fmt.Errorf("failed to list new posts: %w", err)
	}

	for _, remote := range feed {
		if err := ctx.Err(); err != nil {
			return err
		}
		if remote.AuthorDeleted() {
			continue
		}

		method := ClassifyRemoval(remote.RemovedBy)
		_, alreadyStored := known[remote.ID]
		now := e.now()

		switch {
		case IsTrackable(remote, known, e.opts.UntrackedFlairs) && method == NoRemoval && remote.AuthorName() != "":
			post := &TrackedPost{
				PostID:        remote.ID,
				Username:      remote.AuthorName(),
				Title:         remote.Title,
				Text:          remote.Body,
				RecordCreated: now,
				RecordEdited:  now,
			}
			if err := e.store.Save(ctx, post); err != nil {
				return fmt.Errorf("failed to save post %s: %w", remote.ID, err)
			}
			known[remote.ID] = struct{}{}
			report.Ingested++

		case !alreadyStored && method != NoRemoval:
			// Removed before we ever saw a readable version. The flair is not
			// consulted here, so resolved posts removed early are still reported.
			post := &TrackedPost{
				PostID:        remote.ID,
				Username:      UnknownUsername,
				Title:         remote.Title,
				Text:          UnavailableText,
				RecordCreated: now,
				RecordEdited:  now,
			}
			if err := e.store.Save(ctx, post); err != nil {
				return fmt.Errorf("failed to save removed post %s: %w", remote.ID, err)
			}
			known[remote.ID] = struct{}{}
			report.RemovedOnIngest++

			e.notify(ctx, report, FormatRemovalNotification(*post, string(method), e.opts.SubName))
			if err := e.sleep(ctx, e.opts.NotificationPause); err != nil {
				return err
			}
		}
	}

	return nil
}

// Sweep reconciles every stored post with its live remote state and applies
// the resulting deletions once the whole snapshot has been evaluated.
func (e *Engine) Sweep(ctx context.Context, report *Report) error {
	posts, err := e.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored posts: %w", err)
	}

	var plan []Action
	for i := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Swept++

		action, err := e.reconcilePost(ctx, &posts[i], report)
		if action != nil {
			plan = append(plan, *action)
		}
		if err != nil {
			return err
		}
	}

	return e.applyPlan(ctx, plan, report)
}

// reconcilePost evaluates one stored post. It returns the deletion to plan, if any.
func (e *Engine) reconcilePost(ctx context.Context, post *TrackedPost, report *Report) (*Action, error) {
	l := e.logger.With(zap.String("post_id", post.PostID))

	if utils.SubmissionIsOlder(post.RecordCreated, e.opts.MaxDays, e.now()) {
		report.Expired++
		return &Action{Type: ActionExpire, Key: post.PostID, Post: *post}, nil
	}

	remote, err := e.source.Fetch(ctx, post.PostID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		l.Warn("Failed to fetch remote post, skipping", zap.Error(err))
		report.FetchErrors++
		return nil, nil
	}

	if e.opts.UntrackedFlairs.Contains(ParseFlair(remote.Flair)) {
		report.Untracked++
		return &Action{Type: ActionUntrack, Key: post.PostID, Post: *post}, nil
	}

	if remote.AuthorDeleted() {
		e.notify(ctx, report, FormatRemovalNotification(*post, AccountDeletedReason, e.opts.SubName))
		report.AccountDeleted++
		return &Action{Type: ActionAccountDeleted, Key: post.PostID, Post: *post}, nil
	}

	var action *Action
	method := ClassifyRemoval(remote.RemovedBy)
	if method != NoRemoval && post.DeletionMethod != nil {
		// Reported by an earlier run whose purge did not complete.
		l.Debug("Retrying purge of reported removal", zap.String("deletion_method", *post.DeletionMethod))
		return &Action{Type: ActionRemoved, Key: post.PostID, Post: *post}, nil
	}
	if method != NoRemoval {
		m := string(method)
		post.DeletionMethod = &m
		post.RecordEdited = e.now()
		if err := e.store.Edit(ctx, post); err != nil {
			return nil, fmt.Errorf("failed to record removal of %s: %w", post.PostID, err)
		}
		e.notify(ctx, report, FormatRemovalNotification(*post, m, e.opts.SubName))
		report.Removed++
		action = &Action{Type: ActionRemoved, Key: post.PostID, Post: *post}
		if err := e.sleep(ctx, e.opts.NotificationPause); err != nil {
			return action, err
		}
	}

	if post.DeletionMethod == nil && remote.Body != post.Text &&
		(post.PostLastEdit == nil || remote.Body != *post.PostLastEdit) {
		body := remote.Body
		post.PostLastEdit = &body
		post.RecordEdited = e.now()
		if err := e.store.Edit(ctx, post); err != nil {
			return action, fmt.Errorf("failed to record edit of %s: %w", post.PostID, err)
		}
		l.Debug("Recorded post edit")
		report.Edited++
	}

	return action, nil
}

func (e *Engine) notify(ctx context.Context, report *Report, message string) {
	report.Notifications++
	if err := e.notifier.Send(ctx, message); err != nil {
		e.logger.Warn("Notification delivery failed", zap.Error(err))
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
