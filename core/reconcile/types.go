package reconcile

import (
	"strings"
	"time"
)

const (
	// UnknownUsername replaces the author of posts that were already removed
	// when first observed.
	UnknownUsername = "unknown"
	// UnavailableText replaces the body of posts that were already removed
	// when first observed.
	UnavailableText = "N/A"
	// AccountDeletedReason is reported when a tracked post's author disappears.
	AccountDeletedReason = "Account has been deleted"
)

// TrackedPost is the persisted snapshot of a monitored post.
type TrackedPost struct {
	// PostID is the remote identifier and unique key.
	PostID string `json:"post_id"`

	// Username is the author display name, or UnknownUsername.
	Username string `json:"username"`

	// Title is the post title at creation time.
	Title string `json:"title"`

	// Text is the original body. It never changes after creation.
	Text string `json:"text"`

	// PostLastEdit is the most recently observed body when it differs from Text.
	PostLastEdit *string `json:"post_last_edit"`

	// DeletionMethod is set once removal is detected and never overwritten.
	DeletionMethod *string `json:"deletion_method"`

	// RecordCreated is when the row was first stored.
	RecordCreated time.Time `json:"record_created"`

	// RecordEdited is when the row was last mutated.
	RecordEdited time.Time `json:"record_edited"`
}

// RemotePost is the live state of a post as reported by the forum.
type RemotePost struct {
	// ID is the remote identifier.
	ID string

	// Author is the author name. Nil means the account has been deleted.
	Author *string

	// Title is the current title.
	Title string

	// Body is the current self text.
	Body string

	// Flair is the raw flair label, possibly empty.
	Flair string

	// RemovedBy is the raw removal indicator. Nil means not removed.
	RemovedBy *string
}

// AuthorDeleted reports whether the author account no longer exists.
func (p RemotePost) AuthorDeleted() bool {
	return p.Author == nil
}

// AuthorName returns the author name, or "" when absent.
func (p RemotePost) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return *p.Author
}

// RemovalMethod is the classified reason a post is no longer visible.
type RemovalMethod string

const (
	// NoRemoval means the post is still visible.
	NoRemoval RemovalMethod = ""
	// RemovedByModerator covers both author- and moderator-flagged removals.
	RemovedByModerator RemovalMethod = "Removed by moderator"
	// DeletedByUser means the author deleted the post.
	DeletedByUser RemovalMethod = "Deleted by user"
	// UnknownRemovalMethod covers any other removal indicator.
	UnknownRemovalMethod RemovalMethod = "Unknown deletion method"
)

// Flair is a closed set of post flair labels.
type Flair string

const (
	// FlairUnknown is assigned to empty or unrecognized labels.
	FlairUnknown Flair = "Unknown"
	// FlairSolved marks a question that has been answered.
	FlairSolved Flair = "Solved"
	// FlairAbandoned marks a post its author gave up on.
	FlairAbandoned Flair = "Abandoned"
	// FlairIdentification asks for help identifying a craft or material.
	FlairIdentification Flair = "Identification"
	// FlairDiscussion marks an open-ended discussion.
	FlairDiscussion Flair = "Discussion"
	// FlairQuestion marks a general question.
	FlairQuestion Flair = "Question"
)

var knownFlairs = []Flair{
	FlairUnknown,
	FlairSolved,
	FlairAbandoned,
	FlairIdentification,
	FlairDiscussion,
	FlairQuestion,
}

// ParseFlair maps a raw flair label to a Flair, ignoring case and surrounding
// whitespace. Unrecognized or empty labels map to FlairUnknown.
func ParseFlair(label string) Flair {
	label = strings.TrimSpace(label)
	for _, f := range knownFlairs {
		if strings.EqualFold(label, string(f)) {
			return f
		}
	}
	return FlairUnknown
}

// FlairSet is a set of flairs.
type FlairSet map[Flair]struct{}

// NewFlairSet builds a set from the given flairs.
func NewFlairSet(flairs ...Flair) FlairSet {
	set := make(FlairSet, len(flairs))
	for _, f := range flairs {
		set[f] = struct{}{}
	}
	return set
}

// Contains reports whether f is in the set.
func (s FlairSet) Contains(f Flair) bool {
	_, ok := s[f]
	return ok
}

// Options controls a reconciliation run.
type Options struct {
	// SubName is the forum the permalinks point to.
	SubName string

	// MaxDays is the retention window in days.
	MaxDays int

	// MaxPosts bounds the new-posts feed. Zero means unbounded.
	MaxPosts int

	// UntrackedFlairs lists flairs that end tracking.
	UntrackedFlairs FlairSet

	// NotificationPause is the delay after each removal notification.
	NotificationPause time.Duration
}

// ActionType represents the reason a tracked post is purged.
type ActionType string

const (
	// ActionExpire purges a post older than the retention window.
	ActionExpire ActionType = "expire"
	// ActionUntrack purges a post that acquired an untracked flair.
	ActionUntrack ActionType = "untrack"
	// ActionAccountDeleted purges a post whose author account is gone.
	ActionAccountDeleted ActionType = "account_deleted"
	// ActionRemoved purges a post after its removal has been reported.
	ActionRemoved ActionType = "removed"
)

// Action is a planned deletion.
type Action struct {
	// Type specifies why the post is purged.
	Type ActionType `json:"type"`

	// Key is the post identifier.
	Key string `json:"key"`

	// Post is the row as seen by the sweep, handed to the archiver.
	Post TrackedPost `json:"-"`
}

// Report summarizes a run.
type Report struct {
	RunID           string `json:"run_id"`
	Ingested        int    `json:"ingested"`
	RemovedOnIngest int    `json:"removed_on_ingest"`
	Swept           int    `json:"swept"`
	Expired         int    `json:"expired"`
	Untracked       int    `json:"untracked"`
	AccountDeleted  int    `json:"account_deleted"`
	Removed         int    `json:"removed"`
	Edited          int    `json:"edited"`
	FetchErrors     int    `json:"fetch_errors"`
	Deleted         int    `json:"deleted"`
	Notifications   int    `json:"notifications"`
}
