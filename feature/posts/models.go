package posts

import (
	"fmt"

	"craft-sleuth/core/reconcile"
	"craft-sleuth/core/utils"
)

// TableName is the table holding tracked posts.
const TableName = "tracked_posts"

// requiredColumns must exist for the store to operate.
var requiredColumns = []string{
	"post_id",
	"username",
	"title",
	"text",
	"post_last_edit",
	"deletion_method",
	"record_created",
	"record_edited",
}

// postRecord represents one row of the tracked_posts table.
// Timestamps are kept as text in utils.TimestampLayout.
type postRecord struct {
	PostID         string  `gorm:"column:post_id;primaryKey;size:32"`
	Username       string  `gorm:"column:username;size:64;not null"`
	Title          string  `gorm:"column:title;type:text;not null"`
	Text           string  `gorm:"column:text;type:text;not null"`
	PostLastEdit   *string `gorm:"column:post_last_edit;type:text"`
	DeletionMethod *string `gorm:"column:deletion_method;size:64"`
	RecordCreated  string  `gorm:"column:record_created;size:32;not null;index"`
	RecordEdited   string  `gorm:"column:record_edited;size:32;not null"`
}

// TableName overrides the table name.
func (postRecord) TableName() string {
	return TableName
}

func fromDomain(p *reconcile.TrackedPost) postRecord {
	return postRecord{
		PostID:         p.PostID,
		Username:       p.Username,
		Title:          p.Title,
		Text:           p.Text,
		PostLastEdit:   p.PostLastEdit,
		DeletionMethod: p.DeletionMethod,
		RecordCreated:  utils.FormatTimestamp(p.RecordCreated),
		RecordEdited:   utils.FormatTimestamp(p.RecordEdited),
	}
}

func (r postRecord) toDomain() (reconcile.TrackedPost, error) {
	created, err := utils.ParseTimestamp(r.RecordCreated)
	if err != nil {
		return reconcile.TrackedPost{}, fmt.Errorf("post %s: record_created: %w", r.PostID, err)
	}
	edited, err := utils.ParseTimestamp(r.RecordEdited)
	if err != nil {
		return reconcile.TrackedPost{}, fmt.Errorf("post %s: record_edited: %w", r.PostID, err)
	}

	return reconcile.TrackedPost{
		PostID:         r.PostID,
		Username:       r.Username,
		Title:          r.Title,
		Text:           r.Text,
		PostLastEdit:   r.PostLastEdit,
		DeletionMethod: r.DeletionMethod,
		RecordCreated:  created,
		RecordEdited:   edited,
	}, nil
}
