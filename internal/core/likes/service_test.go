package likes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLikeRepository struct {
	mock.Mock
}

func (m *mockLikeRepository) Toggle(ctx context.Context, userID, postID string) (*ToggleResult, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ToggleResult), args.Error(1)
}

func (m *mockLikeRepository) ListPostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockLikeRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func TestLikeService_ToggleLike(t *testing.T) {
	repo := new(mockLikeRepository)
	service := NewService(repo, nil)
	ctx := context.Background()

	repo.On("Toggle", ctx, "user-1", "post-1").
		Return(&ToggleResult{Liked: true, LikeCount: 5}, nil).Once()

	result, err := service.ToggleLike(ctx, "user-1", "post-1")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 5, result.LikeCount)

	repo.On("Toggle", ctx, "user-1", "post-1").
		Return(&ToggleResult{Liked: false, LikeCount: 4}, nil).Once()

	result, err = service.ToggleLike(ctx, "user-1", "post-1")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 4, result.LikeCount)

	repo.AssertExpectations(t)
}

func TestLikeService_ToggleLike_ValidatesInput(t *testing.T) {
	repo := new(mockLikeRepository)
	service := NewService(repo, nil)
	ctx := context.Background()

	_, err := service.ToggleLike(ctx, "", "post-1")
	assert.Error(t, err)

	_, err = service.ToggleLike(ctx, "user-1", "  ")
	assert.Error(t, err)

	repo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}

func TestLikeService_ToggleLike_ConflictSurfaces(t *testing.T) {
	repo := new(mockLikeRepository)
	service := NewService(repo, nil)
	ctx := context.Background()

	repo.On("Toggle", ctx, "user-1", "post-1").
		Return(nil, ErrTransactionConflict)

	_, err := service.ToggleLike(ctx, "user-1", "post-1")
	assert.ErrorIs(t, err, ErrTransactionConflict)
}

func TestLikeService_ToggleLike_PostNotFound(t *testing.T) {
	repo := new(mockLikeRepository)
	service := NewService(repo, nil)
	ctx := context.Background()

	repo.On("Toggle", ctx, "user-1", "gone").
		Return(nil, ErrPostNotFound)

	_, err := service.ToggleLike(ctx, "user-1", "gone")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikeService_LikedPostIDs(t *testing.T) {
	repo := new(mockLikeRepository)
	service := NewService(repo, nil)
	ctx := context.Background()

	repo.On("ListPostIDsByUser", ctx, "user-1").
		Return([]string{"post-3", "post-1"}, nil)

	ids, err := service.LikedPostIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"post-3", "post-1"}, ids)
}

func TestLikeService_IsLiked_BlankInputs(t *testing.T) {
	repo := new(mockLikeRepository)
	service := NewService(repo, nil)

	liked, err := service.IsLiked(context.Background(), "", "post-1")
	require.NoError(t, err)
	assert.False(t, liked)

	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}
