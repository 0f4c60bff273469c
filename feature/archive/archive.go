package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"craft-sleuth/core/reconcile"
	"craft-sleuth/core/storage"

	"github.com/minio/minio-go/v7"
)

// Entry is the archived form of a purged post.
type Entry struct {
	Post     reconcile.TrackedPost `json:"post"`
	Reason   reconcile.ActionType  `json:"reason"`
	PurgedAt time.Time             `json:"purged_at"`
}

// Archiver writes purged posts as JSON objects to a bucket.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

var _ reconcile.Archiver = (*Archiver)(nil)

// New creates an archiver writing under prefix in bucket.
func New(client storage.Client, bucket, prefix string) *Archiver {
	return &Archiver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// ObjectName returns the object holding the archived post.
func (a *Archiver) ObjectName(postID string) string {
	return path.Join(a.prefix, postID+".json")
}

// Archive stores a copy of post. A later purge of the same id overwrites it.
func (a *Archiver) Archive(ctx context.Context, post reconcile.TrackedPost, reason reconcile.ActionType) error {
	data, err := json.Marshal(Entry{Post: post, Reason: reason, PurgedAt: a.now()})
	if err != nil {
		return fmt.Errorf("failed to encode post %s: %w", post.PostID, err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, a.ObjectName(post.PostID), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload post %s: %w", post.PostID, err)
	}
	return nil
}

// List returns the ids of every archived post.
func (a *Archiver) List(ctx context.Context) ([]string, error) {
	prefix := ""
	if a.prefix != "" {
		prefix = a.prefix + "/"
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var ids []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if id, ok := strings.CutSuffix(name, ".json"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Get reads one archived post.
func (a *Archiver) Get(ctx context.Context, postID string) (*Entry, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, a.ObjectName(postID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archived post %s: %w", postID, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived post %s: %w", postID, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode archived post %s: %w", postID, err)
	}
	return &entry, nil
}
