package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// applyPlan archives (when an archiver is set) and deletes every planned post.
// A failing post is kept in the store for the next run; the remaining actions
// still execute and all failures are returned together.
func (e *Engine) applyPlan(ctx context.Context, plan []Action, report *Report) error {
	var errs error

	for _, action := range plan {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		if e.archiver != nil {
			if err := e.archiver.Archive(ctx, action.Post, action.Type); err != nil {
				e.logger.Warn("Failed to archive post, keeping it for the next run",
					zap.String("post_id", action.Key),
					zap.Error(err),
				)
				errs = multierr.Append(errs, fmt.Errorf("failed to archive %s: %w", action.Key, err))
				continue
			}
		}

		if err := e.store.Delete(ctx, action.Key); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to delete %s: %w", action.Key, err))
			continue
		}

		e.logger.Debug("Deleted tracked post",
			zap.String("post_id", action.Key),
			zap.String("reason", string(action.Type)),
		)
		report.Deleted++
	}

	return errs
}
