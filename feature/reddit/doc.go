// Package reddit adapts the Reddit API to the reconciliation engine.
//
// Client implements reconcile.Source: ListNew pages through /r/{sub}/new and
// Fetch reads /by_id/t3_{id}. Authors shown as "[deleted]" become absent,
// removed_by_category is passed through as the raw removal indicator and
// link_flair_text as the flair label.
//
// ModmailNotifier implements reconcile.Notifier by composing a message to
// the subreddit, which lands in its modmail.
//
// Authentication uses the script application password grant when client id
// and username are configured, or a fixed access token when one is given.
package reddit
