package reconcile

import "context"

// Source is the remote forum the engine reconciles against.
type Source interface {
	// ListNew returns new posts, newest first. A limit of zero means unbounded.
	ListNew(ctx context.Context, limit int) ([]RemotePost, error)

	// Fetch returns the live state of a single post.
	Fetch(ctx context.Context, id string) (*RemotePost, error)
}

// Store is the durable collection of tracked posts.
type Store interface {
	// Init prepares the store. It must be idempotent.
	Init(ctx context.Context) error

	// FetchAll returns every tracked post.
	FetchAll(ctx context.Context) ([]TrackedPost, error)

	// Save inserts a new tracked post.
	Save(ctx context.Context, post *TrackedPost) error

	// Edit updates a tracked post by PostID.
	Edit(ctx context.Context, post *TrackedPost) error

	// Delete removes a tracked post by PostID.
	Delete(ctx context.Context, postID string) error
}

// Notifier is a best-effort outbound message sink.
// The engine logs delivery errors and never retries.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Archiver receives a copy of every post before it is purged.
type Archiver interface {
	Archive(ctx context.Context, post TrackedPost, reason ActionType) error
}
