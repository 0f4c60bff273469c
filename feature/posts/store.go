package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"craft-sleuth/core/database"
	"craft-sleuth/core/reconcile"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no tracked post has the given id.
	ErrNotFound = errors.New("tracked post not found")
	// ErrSchemaMismatch is returned when the table lacks required columns.
	ErrSchemaMismatch = errors.New("tracked posts table does not match the expected schema")
)

// Store persists tracked posts through gorm.
type Store struct {
	db *gorm.DB
}

var _ reconcile.Store = (*Store)(nil)

// NewStore creates a store on top of an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Init creates the table when absent and verifies its columns.
func (s *Store) Init(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&postRecord{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return s.Check(ctx)
}

// Check reports ErrSchemaMismatch when required columns are missing.
func (s *Store) Check(ctx context.Context) error {
	missing, err := database.MissingColumns(s.db.WithContext(ctx), TableName, requiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

// FetchAll returns every tracked post, oldest first.
func (s *Store) FetchAll(ctx context.Context) ([]reconcile.TrackedPost, error) {
	return s.List(ctx, 0)
}

// List returns up to limit tracked posts, oldest first. Zero means all.
func (s *Store) List(ctx context.Context, limit int) ([]reconcile.TrackedPost, error) {
	query := s.db.WithContext(ctx).Order("record_created ASC").Order("post_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []postRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tracked posts: %w", err)
	}

	out := make([]reconcile.TrackedPost, 0, len(records))
	for _, r := range records {
		post, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	return out, nil
}

// Get returns a single tracked post.
func (s *Store) Get(ctx context.Context, postID string) (*reconcile.TrackedPost, error) {
	var record postRecord
	err := s.db.WithContext(ctx).Where("post_id = ?", postID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post %s: %w", postID, err)
	}

	post, err := record.toDomain()
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Count returns the number of tracked posts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&postRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count tracked posts: %w", err)
	}
	return n, nil
}

// Save inserts a new tracked post. Inserting an existing id fails.
func (s *Store) Save(ctx context.Context, post *reconcile.TrackedPost) error {
	record := fromDomain(post)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert post %s: %w", post.PostID, err)
	}
	return nil
}

// Edit overwrites the mutable fields of a tracked post.
func (s *Store) Edit(ctx context.Context, post *reconcile.TrackedPost) error {
	record := fromDomain(post)
	// A map keeps nil pointers, which a struct update would skip.
	result := s.db.WithContext(ctx).Model(&postRecord{}).
		Where("post_id = ?", post.PostID).
		Updates(map[string]any{
			"username":        record.Username,
			"title":           record.Title,
			"text":            record.Text,
			"post_last_edit":  record.PostLastEdit,
			"deletion_method": record.DeletionMethod,
			"record_edited":   record.RecordEdited,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update post %s: %w", post.PostID, result.Error)
	}
	if result.RowsAffected == 0 {
		// MySQL reports zero affected rows when nothing changed.
		if _, err := s.Get(ctx, post.PostID); err != nil {
			return fmt.Errorf("failed to update post %s: %w", post.PostID, err)
		}
	}
	return nil
}

// Delete removes a tracked post. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, postID string) error {
	if err := s.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&postRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete post %s: %w", postID, err)
	}
	return nil
}
