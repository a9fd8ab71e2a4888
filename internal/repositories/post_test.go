package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postColumnNames = []string{"post_id", "title", "content", "user_id", "created_at", "updated_at"}

func TestPostReadRepository_GetByID(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE post_id").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(postColumnNames).
				AddRow(7, "T", "C", ownerID.String(), now, now))

		post, err := NewPostReadRepository(db).GetByID(context.Background(), 7)
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, int64(7), post.PostID)
		assert.Equal(t, ownerID, post.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE post_id").
			WithArgs(int64(689)).
			WillReturnRows(sqlmock.NewRows(postColumnNames))

		post, err := NewPostReadRepository(db).GetByID(context.Background(), 689)
		assert.NoError(t, err)
		assert.Nil(t, post)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM posts").WillReturnError(errors.New("boom"))

		post, err := NewPostReadRepository(db).GetByID(context.Background(), 1)
		assert.Error(t, err)
		assert.Nil(t, post)
	})
}

func TestPostReadRepository_Lists(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()

	t.Run("all", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM posts ORDER BY post_id").
			WillReturnRows(sqlmock.NewRows(postColumnNames).
				AddRow(1, "a", "b", ownerID.String(), now, now).
				AddRow(2, "c", "d", uuid.NewString(), now, now))

		posts, err := NewPostReadRepository(db).ListAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("by owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE user_id").
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows(postColumnNames).
				AddRow(1, "a", "b", ownerID.String(), now, now))

		posts, err := NewPostReadRepository(db).ListByUserID(context.Background(), ownerID)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, ownerID, posts[0].UserID)
	})

	t.Run("by owner empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE user_id").
			WillReturnRows(sqlmock.NewRows(postColumnNames))

		posts, err := NewPostReadRepository(db).ListByUserID(context.Background(), ownerID)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM posts").WillReturnError(errors.New("boom"))

		posts, err := NewPostReadRepository(db).ListAll(context.Background())
		assert.Error(t, err)
		assert.Nil(t, posts)
	})
}

func TestPostWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	ownerID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs("T", "C", ownerID).
		WillReturnRows(sqlmock.NewRows(postColumnNames).
			AddRow(10, "T", "C", ownerID.String(), now, now))

	post, err := NewPostWriteRepository(db, nil).Save(context.Background(), ownerID, "T", "C")
	require.NoError(t, err)
	assert.Equal(t, int64(10), post.PostID)
	assert.Equal(t, ownerID, post.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostWriteRepository_Update(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()

	t.Run("owner match", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE posts").
			WithArgs(int64(10), ownerID, "T2", "C2").
			WillReturnRows(sqlmock.NewRows(postColumnNames).
				AddRow(10, "T2", "C2", ownerID.String(), now, now))

		post, err := NewPostWriteRepository(db, nil).Update(context.Background(), 10, ownerID, "T2", "C2")
		require.NoError(t, err)
		assert.Equal(t, "T2", post.Title)
		assert.Equal(t, ownerID, post.UserID)
	})

	t.Run("no matching row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE posts").
			WillReturnRows(sqlmock.NewRows(postColumnNames))

		post, err := NewPostWriteRepository(db, nil).Update(context.Background(), 10, uuid.New(), "T2", "C2")
		assert.ErrorIs(t, err, ErrPostNotFound)
		assert.Nil(t, post)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE posts").WillReturnError(errors.New("boom"))

		_, err := NewPostWriteRepository(db, nil).Update(context.Background(), 10, ownerID, "T2", "C2")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostWriteRepository_Delete(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		result  int64
		execErr error
		wantErr error
	}{
		{name: "deleted", result: 1},
		{name: "not found or not owned", result: 0, wantErr: ErrPostNotFound},
		{name: "db error", execErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			exp := mock.ExpectExec("DELETE FROM posts").WithArgs(int64(10), ownerID)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.result))
			}

			err := NewPostWriteRepository(db, nil).Delete(context.Background(), 10, ownerID)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.execErr != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
