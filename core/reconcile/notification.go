package reconcile

import (
	"fmt"
	"strings"

	"craft-sleuth/core/utils"
)

// Permalink builds the canonical link to a post.
func Permalink(subName, postID string) string {
	return fmt.Sprintf("https://www.reddit.com/r/%s/comments/%s", subName, postID)
}

// FormatRemovalNotification renders the message sent when a tracked post is
// removed, deleted, or loses its author.
func FormatRemovalNotification(post TrackedPost, method, subName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A post has been removed: %s\n\n", method)
	fmt.Fprintf(&b, "Author: u/%s\n\n", post.Username)
	fmt.Fprintf(&b, "Title: %s\n\n", post.Title)
	fmt.Fprintf(&b, "Link: %s\n\n", Permalink(subName, post.PostID))
	fmt.Fprintf(&b, "Method: %s\n\n", method)
	fmt.Fprintf(&b, "Record created: %s\n\n", utils.FormatTimestamp(post.RecordCreated))
	fmt.Fprintf(&b, "Record edited: %s", utils.FormatTimestamp(post.RecordEdited))
	return b.String()
}

// FormatFailureNotification renders the operator report for a failed run.
func FormatFailureNotification(botName, operator string, err error) string {
	contact := "the bot operator"
	if operator != "" {
		contact = operator
	}
	return fmt.Sprintf("Error with '%s':\n\n%v\n\nPlease report to %s", botName, err, contact)
}

// FormatConfigurationNotice renders the notice sent when the bot cannot run
// because it has not been configured.
func FormatConfigurationNotice(botName string) string {
	return fmt.Sprintf("%s needs configuration!", botName)
}
