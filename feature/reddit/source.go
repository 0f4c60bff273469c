package reddit

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"craft-sleuth/core/reconcile"
)

const (
	// pageSize is the largest page the listing endpoints return.
	pageSize = 100
	// maxListing is how deep Reddit lets a listing be paged.
	maxListing = 1000
	// deletedAuthor is what Reddit shows for deleted accounts.
	deletedAuthor = "[deleted]"
)

var _ reconcile.Source = (*Client)(nil)

type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data submission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type submission struct {
	ID                string  `json:"id"`
	Author            string  `json:"author"`
	Title             string  `json:"title"`
	Selftext          string  `json:"selftext"`
	LinkFlairText     *string `json:"link_flair_text"`
	RemovedByCategory *string `json:"removed_by_category"`
}

func (s submission) toRemote() reconcile.RemotePost {
	post := reconcile.RemotePost{
		ID:        s.ID,
		Title:     s.Title,
		Body:      s.Selftext,
		RemovedBy: s.RemovedByCategory,
	}
	if s.Author != "" && s.Author != deletedAuthor {
		author := s.Author
		post.Author = &author
	}
	if s.LinkFlairText != nil {
		post.Flair = *s.LinkFlairText
	}
	return post
}

// ListNew pages through the subreddit's new listing, newest first.
// A limit of zero reads as deep as Reddit allows.
func (c *Client) ListNew(ctx context.Context, limit int) ([]reconcile.RemotePost, error) {
	if limit <= 0 || limit > maxListing {
		limit = maxListing
	}

	var (
		out   []reconcile.RemotePost
		after string
	)
	for len(out) < limit {
		query := url.Values{
			"limit":    {strconv.Itoa(min(pageSize, limit-len(out)))},
			"raw_json": {"1"},
		}
		if after != "" {
			query.Set("after", after)
		}

		var page listing
		if err := c.do(ctx, http.MethodGet, "/r/"+c.sub+"/new", query, nil, &page); err != nil {
			return nil, err
		}
		for _, child := range page.Data.Children {
			out = append(out, child.Data.toRemote())
		}

		if page.Data.After == "" || len(page.Data.Children) == 0 {
			break
		}
		after = page.Data.After
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Fetch returns the live state of one post.
func (c *Client) Fetch(ctx context.Context, id string) (*reconcile.RemotePost, error) {
	var page listing
	query := url.Values{"raw_json": {"1"}}
	if err := c.do(ctx, http.MethodGet, "/by_id/t3_"+id, query, nil, &page); err != nil {
		return nil, err
	}
	if len(page.Data.Children) == 0 {
		return nil, ErrPostNotFound
	}
	post := page.Data.Children[0].Data.toRemote()
	return &post, nil
}
