package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"craft-sleuth/core/database"
	"craft-sleuth/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	store := NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func samplePost(id string, created time.Time) *reconcile.TrackedPost {
	return &reconcile.TrackedPost{
		PostID:        id,
		Username:      "alice",
		Title:         "What is this?",
		Text:          "Found this in my attic",
		RecordCreated: created,
		RecordEdited:  created,
	}
}

func TestStore_Init(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Init(ctx), "init must be idempotent")
	assert.NoError(t, store.Check(ctx))
}

func TestStore_SaveAndFetchAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 14, 9, 30, 0, 123456000, time.Local)

	require.NoError(t, store.Save(ctx, samplePost("b2", created.Add(time.Minute))))
	require.NoError(t, store.Save(ctx, samplePost("a1", created)))

	posts, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "a1", posts[0].PostID)
	assert.Equal(t, "b2", posts[1].PostID)
	assert.Equal(t, "alice", posts[0].Username)
	assert.Nil(t, posts[0].PostLastEdit)
	assert.Nil(t, posts[0].DeletionMethod)
	assert.True(t, created.Equal(posts[0].RecordCreated))
	assert.True(t, created.Equal(posts[0].RecordEdited))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_SaveDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)

	require.NoError(t, store.Save(ctx, samplePost("a1", now)))
	assert.Error(t, store.Save(ctx, samplePost("a1", now)))
}

func TestStore_Edit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)
	post := samplePost("a1", created)
	require.NoError(t, store.Save(ctx, post))

	body := "Found this in my attic, it is made of brass"
	method := string(reconcile.DeletedByUser)
	post.PostLastEdit = &body
	post.DeletionMethod = &method
	post.RecordEdited = created.Add(2 * time.Hour)
	require.NoError(t, store.Edit(ctx, post))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, got.PostLastEdit)
	require.NotNil(t, got.DeletionMethod)
	assert.Equal(t, body, *got.PostLastEdit)
	assert.Equal(t, method, *got.DeletionMethod)
	assert.Equal(t, "Found this in my attic", got.Text)
	assert.True(t, got.RecordEdited.After(got.RecordCreated))

	t.Run("Unchanged", func(t *testing.T) {
		assert.NoError(t, store.Edit(ctx, post))
	})

	t.Run("Missing", func(t *testing.T) {
		err := store.Edit(ctx, samplePost("zz", created))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, samplePost("a1", time.Now())))

	require.NoError(t, store.Delete(ctx, "a1"))
	_, err := store.Get(ctx, "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "a1"), "deleting twice is harmless")
}

func TestStore_CorruptTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	err := store.db.Exec(
		"INSERT INTO tracked_posts (post_id, username, title, text, record_created, record_edited) VALUES (?, ?, ?, ?, ?, ?)",
		"bad", "bob", "t", "x", "yesterday", "yesterday",
	).Error
	require.NoError(t, err)

	_, err = store.FetchAll(ctx)
	assert.ErrorContains(t, err, "record_created")
}

func TestStore_CheckMismatch(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE tracked_posts (post_id TEXT PRIMARY KEY, title TEXT)").Error)

	err = NewStore(db).Check(context.Background())
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.ErrorContains(t, err, "username")
}

func TestStore_MySQL(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchAllError", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `tracked_posts`").WillReturnError(assertErr)

		_, err := NewStore(db).FetchAll(ctx)
		assert.ErrorIs(t, err, assertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FetchAll", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := sqlmock.NewRows(requiredColumns).
			AddRow("a1", "alice", "Title", "Body", nil, "Removed by moderator", "2026-10-14 09:30:00.000000", "2026-10-14 10:00:00.000000")
		mock.ExpectQuery("SELECT \\* FROM `tracked_posts` ORDER BY record_created ASC,post_id ASC").WillReturnRows(rows)

		posts, err := NewStore(db).FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Removed by moderator", *posts[0].DeletionMethod)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `tracked_posts` WHERE post_id = \\?").
			WithArgs("a1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, NewStore(db).Delete(ctx, "a1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

var assertErr = errors.New("connection lost")
