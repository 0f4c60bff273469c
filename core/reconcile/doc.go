// Package reconcile implements the post lifecycle reconciliation engine.
//
// The engine keeps the tracked-post store consistent with the remote forum,
// which is the source of truth. Each run performs two strictly sequential
// passes:
//
//   - Ingestion: walks the feed of new posts (newest first) and starts tracking
//     every trackable post. Posts that are already removed when first seen are
//     recorded with placeholder author/body and reported immediately.
//   - Sweep: walks a snapshot of every tracked post and decides whether it has
//     expired, been resolved, lost its author, been removed, or been edited.
//     Deletions are collected into a plan and applied only after every post of
//     the snapshot has been evaluated.
//
// # Collaborators
//
// The engine only talks to narrow interfaces:
//
//   - Source: the remote forum (new posts feed, per-id fetch).
//   - Store: durable collection of TrackedPost rows.
//   - Notifier: best-effort outbound message sink (modmail, Discord, log).
//   - Archiver: optional sink receiving a copy of each purged row.
//
// # Rate limiting
//
// After every removal notification the engine pauses for the configured
// NotificationPause so the outbound channel is not flooded. The pause honours
// context cancellation; an interrupted run simply stops, and the next run
// re-evaluates everything from the store.
//
// # Usage
//
//	engine := reconcile.NewEngine(source, store, notifier, cfg.Bot.Options(), logger)
//	report, err := engine.Run(ctx)
package reconcile
