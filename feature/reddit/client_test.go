package reddit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"craft-sleuth/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func child(id, author, flair string, removedBy *string) map[string]any {
	data := map[string]any{
		"id":                  id,
		"author":              author,
		"title":               "Title " + id,
		"selftext":            "Body " + id,
		"removed_by_category": removedBy,
	}
	if flair != "" {
		data["link_flair_text"] = flair
	}
	return map[string]any{"kind": "t3", "data": data}
}

func writeListing(w http.ResponseWriter, after string, children ...map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"kind": "Listing",
		"data": map[string]any{"after": after, "children": children},
	})
}

func newTestClient(t *testing.T, handler http.Handler, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	if cfg.AuthURL == "" {
		cfg.AuthURL = srv.URL + "/api/v1/access_token"
	}
	cfg.UserAgent = "craft-sleuth-test"
	return NewClient(cfg, "whatisthisthing", zap.NewNop())
}

func TestClient_ListNew(t *testing.T) {
	moderator := "moderator"
	mux := http.NewServeMux()
	mux.HandleFunc("/r/whatisthisthing/new", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "craft-sleuth-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "1", r.URL.Query().Get("raw_json"))
		switch r.URL.Query().Get("after") {
		case "":
			writeListing(w, "t3_b2", child("a1", "alice", "Question", nil), child("b2", "[deleted]", "", nil))
		case "t3_b2":
			writeListing(w, "", child("c3", "carol", "Solved", &moderator))
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("after"))
		}
	})
	client := newTestClient(t, mux, Config{})

	posts, err := client.ListNew(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "alice", posts[0].AuthorName())
	assert.Equal(t, "Question", posts[0].Flair)
	assert.Equal(t, "Body a1", posts[0].Body)
	assert.Nil(t, posts[0].RemovedBy)
	assert.True(t, posts[1].AuthorDeleted())
	assert.Equal(t, reconcile.RemovedByModerator, reconcile.ClassifyRemoval(posts[2].RemovedBy))
}

func TestClient_ListNewLimit(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/r/whatisthisthing/new", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		assert.Equal(t, 2, n)
		writeListing(w, "t3_more", child("a1", "alice", "", nil), child("b2", "bob", "", nil), child("c3", "carol", "", nil))
	})
	client := newTestClient(t, mux, Config{})

	posts, err := client.ListNew(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Fetch(t *testing.T) {
	deleted := "deleted"
	mux := http.NewServeMux()
	mux.HandleFunc("/by_id/t3_a1", func(w http.ResponseWriter, r *http.Request) {
		writeListing(w, "", child("a1", "alice", "Identification", &deleted))
	})
	mux.HandleFunc("/by_id/t3_gone", func(w http.ResponseWriter, r *http.Request) {
		writeListing(w, "")
	})
	mux.HandleFunc("/by_id/t3_boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	})
	client := newTestClient(t, mux, Config{})
	ctx := context.Background()

	post, err := client.Fetch(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", post.ID)
	assert.Equal(t, reconcile.DeletedByUser, reconcile.ClassifyRemoval(post.RemovedBy))

	_, err = client.Fetch(ctx, "gone")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = client.Fetch(ctx, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = client.Fetch(ctx, "boom")
	assert.ErrorContains(t, err, "HTTP 503")
}

func TestClient_PasswordGrant(t *testing.T) {
	var tokens int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokens, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "sleuth", r.PostForm.Get("username"))
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/by_id/t3_a1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bearer tok", r.Header.Get("Authorization"))
		writeListing(w, "", child("a1", "alice", "", nil))
	})
	client := newTestClient(t, mux, Config{ClientID: "id", ClientSecret: "secret", Username: "sleuth", Password: "pw"})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := client.Fetch(ctx, "a1")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens), "token is cached")
}

func TestClient_TokenRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
	})
	client := newTestClient(t, mux, Config{ClientID: "id", Username: "sleuth"})

	_, err := client.Fetch(context.Background(), "a1")
	assert.ErrorContains(t, err, "invalid_grant")
}

func TestModmailNotifier_Send(t *testing.T) {
	var fail atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/compose", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "bearer static", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "/r/whatisthisthing", r.PostForm.Get("to"))
		assert.Equal(t, "CraftSleuthBot", r.PostForm.Get("subject"))
		assert.Equal(t, "A post has been removed", r.PostForm.Get("text"))
		if fail.Load() {
			_, _ = w.Write([]byte(`{"json":{"errors":[["RATELIMIT","you are doing that too much","ratelimit"]]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"json":{"errors":[]}}`))
	})
	client := newTestClient(t, mux, Config{AccessToken: "static"})
	notifier := NewModmailNotifier(client, "CraftSleuthBot")
	ctx := context.Background()

	assert.NoError(t, notifier.Send(ctx, "A post has been removed"))

	fail.Store(true)
	assert.ErrorContains(t, notifier.Send(ctx, "A post has been removed"), "RATELIMIT")
}
