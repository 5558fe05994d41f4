package postgres

import (
	"Bislei/internal/core/comments"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postCommentCount(t *testing.T, db *sql.DB, postID string) int {
	var count int
	err := db.QueryRow(`SELECT comment_count FROM posts WHERE id = $1`, postID).Scan(&count)
	require.NoError(t, err, "Failed to read comment_count")
	return count
}

func newTestComment(postID, authorID, content string, at time.Time) *comments.Comment {
	return &comments.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: at,
	}
}

func TestCommentRepo_Create_BumpsCounterWithRow(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()
	defer cleanupInteractions(t, db)

	repo := NewCommentRepository(db)
	ctx := context.Background()

	authorID := createTestAccount(t, db)
	postID := createTestPost(t, db, authorID)

	comment := newTestComment(postID, authorID, "nice perch", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, comment))

	// The stored rows and the denormalized counter must agree
	rows, err := repo.CountByPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, postCommentCount(t, db, postID))

	list, err := repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, comment.ID, list[0].ID)
	assert.Equal(t, "nice perch", list[0].Content)
}

func TestCommentRepo_Create_BlankContentLeavesCounterUntouched(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()
	defer cleanupInteractions(t, db)

	repo := NewCommentRepository(db)
	ctx := context.Background()

	authorID := createTestAccount(t, db)
	postID := createTestPost(t, db, authorID)

	// The service filters blank text before the repository is reached; the
	// schema still rejects it, and the rejection must roll back the
	// counter increment
	err := repo.Create(ctx, newTestComment(postID, authorID, "   ", time.Now().UTC()))
	assert.Error(t, err)

	rows, err := repo.CountByPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, postCommentCount(t, db, postID))
}

func TestCommentRepo_Create_PostNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()
	defer cleanupInteractions(t, db)

	repo := NewCommentRepository(db)
	authorID := createTestAccount(t, db)

	err := repo.Create(context.Background(),
		newTestComment(uuid.New().String(), authorID, "ghost post", time.Now().UTC()))
	assert.ErrorIs(t, err, comments.ErrPostNotFound)
}

func TestCommentRepo_ListByPost_AscendingOrder(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()
	defer cleanupInteractions(t, db)

	repo := NewCommentRepository(db)
	ctx := context.Background()

	authorID := createTestAccount(t, db)
	postID := createTestPost(t, db, authorID)

	base := time.Now().UTC().Truncate(time.Millisecond)
	second := newTestComment(postID, authorID, "second", base.Add(time.Second))
	first := newTestComment(postID, authorID, "first", base)

	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	list, err := repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)

	count, err := repo.CountByPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, postCommentCount(t, db, postID))
}
