package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"craft-sleuth/core/reconcile"
)

// modmailSubjectLimit is the longest subject Reddit accepts.
const modmailSubjectLimit = 100

var _ reconcile.Notifier = (*ModmailNotifier)(nil)

// ModmailNotifier delivers messages to the subreddit moderators.
type ModmailNotifier struct {
	client  *Client
	subject string
}

// NewModmailNotifier creates a notifier whose messages use the given subject.
func NewModmailNotifier(client *Client, subject string) *ModmailNotifier {
	if len(subject) > modmailSubjectLimit {
		subject = subject[:modmailSubjectLimit]
	}
	return &ModmailNotifier{client: client, subject: subject}
}

type composeResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
	} `json:"json"`
}

// Send posts the message to the subreddit modmail.
func (n *ModmailNotifier) Send(ctx context.Context, message string) error {
	form := url.Values{
		"api_type": {"json"},
		"to":       {"/r/" + n.client.sub},
		"subject":  {n.subject},
		"text":     {message},
	}

	var resp composeResponse
	if err := n.client.do(ctx, http.MethodPost, "/api/compose", nil, form, &resp); err != nil {
		return fmt.Errorf("failed to send modmail: %w", err)
	}
	if len(resp.JSON.Errors) > 0 {
		parts := make([]string, 0, len(resp.JSON.Errors))
		for _, e := range resp.JSON.Errors {
			parts = append(parts, fmt.Sprint(e...))
		}
		return fmt.Errorf("modmail rejected: %s", strings.Join(parts, "; "))
	}
	return nil
}
