package posts

import (
	"Bislei/internal/core/blobs"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPostRepository) ListFeed(ctx context.Context, limit, offset int) ([]*Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, key string, data []byte, mimeType string) (string, error) {
	args := m.Called(ctx, key, data, mimeType)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *mockBlobStore) Resolve(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func TestPostService_UploadPost(t *testing.T) {
	repo := new(mockPostRepository)
	store := new(mockBlobStore)
	service := NewService(repo, store, nil)
	ctx := context.Background()

	store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "posts/user-1/") && strings.HasSuffix(key, ".jpg")
	}), []byte{0xFF, 0xD8}, "image/jpeg").
		Return("http://localhost/blobs/posts/user-1/x.jpg", nil)
	repo.On("Create", ctx, mock.AnythingOfType("*posts.Post")).Return(nil)

	post, err := service.UploadPost(ctx, UploadPostRequest{
		AuthorID:  "user-1",
		Caption:   "  first trout of the season  ",
		ImageData: []byte{0xFF, 0xD8},
		MimeType:  "image/jpeg",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", post.AuthorID)
	assert.Equal(t, "first trout of the season", post.Caption)
	assert.Zero(t, post.LikeCount)
	assert.Zero(t, post.CommentCount)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "http://localhost/blobs/posts/user-1/x.jpg", post.ImageURL)
}

func TestPostService_UploadPost_ValidatesInput(t *testing.T) {
	repo := new(mockPostRepository)
	store := new(mockBlobStore)
	service := NewService(repo, store, nil)
	ctx := context.Background()

	_, err := service.UploadPost(ctx, UploadPostRequest{
		AuthorID: "user-1",
	})
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = service.UploadPost(ctx, UploadPostRequest{
		AuthorID:  "user-1",
		ImageData: []byte{0x01},
		Caption:   strings.Repeat("a", 501),
	})
	assert.ErrorIs(t, err, ErrCaptionTooLong)

	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostService_UploadPost_ReclaimsBlobOnCreateFailure(t *testing.T) {
	repo := new(mockPostRepository)
	store := new(mockBlobStore)
	service := NewService(repo, store, nil)
	ctx := context.Background()

	store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("http://localhost/blobs/posts/user-1/x.jpg", nil)
	repo.On("Create", ctx, mock.Anything).Return(assert.AnError)
	store.On("Delete", ctx, "http://localhost/blobs/posts/user-1/x.jpg").Return(nil)

	_, err := service.UploadPost(ctx, UploadPostRequest{
		AuthorID:  "user-1",
		ImageData: []byte{0x01},
		MimeType:  "image/jpeg",
	})
	require.Error(t, err)

	store.AssertCalled(t, "Delete", ctx, "http://localhost/blobs/posts/user-1/x.jpg")
}

func TestPostService_DeletePost_OwnerOnly(t *testing.T) {
	repo := new(mockPostRepository)
	store := new(mockBlobStore)
	service := NewService(repo, store, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "post-1").
		Return(&Post{ID: "post-1", AuthorID: "user-1"}, nil)

	err := service.DeletePost(ctx, "someone-else", "post-1")
	assert.ErrorIs(t, err, ErrNotPostOwner)

	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostService_DeletePost_MissingBlobIsNotFatal(t *testing.T) {
	repo := new(mockPostRepository)
	store := new(mockBlobStore)
	service := NewService(repo, store, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "post-1").Return(&Post{
		ID:       "post-1",
		AuthorID: "user-1",
		ImageURL: "http://localhost/blobs/posts/user-1/x.jpg",
	}, nil)
	store.On("Delete", ctx, "http://localhost/blobs/posts/user-1/x.jpg").
		Return(blobs.ErrBlobMissing)
	repo.On("Delete", ctx, "post-1").Return(nil)

	err := service.DeletePost(ctx, "user-1", "post-1")
	assert.NoError(t, err)

	repo.AssertCalled(t, "Delete", ctx, "post-1")
}

func TestPostService_Feed_ClampsPaging(t *testing.T) {
	repo := new(mockPostRepository)
	service := NewService(repo, nil, nil)
	ctx := context.Background()

	repo.On("ListFeed", ctx, 50, 0).Return([]*Post{}, nil)

	_, err := service.Feed(ctx, 0, -3)
	require.NoError(t, err)

	_, err = service.Feed(ctx, 500, -1)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListFeed", 2)
}
