package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *mockProfileRepository) Merge(ctx context.Context, userID string, merge ProfileMerge) error {
	args := m.Called(ctx, userID, merge)
	return args.Error(0)
}

func TestCache_ResolveFetchesOnce(t *testing.T) {
	repo := new(mockProfileRepository)
	cache := NewCache(repo, nil)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").
		Return(&Profile{UserID: "user-1", Name: "Aarif"}, nil).Once()

	first, err := cache.Resolve(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Aarif", first.Name)

	second, err := cache.Resolve(ctx, "user-1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	repo.AssertExpectations(t)
}

func TestCache_FailedFetchIsNotCached(t *testing.T) {
	repo := new(mockProfileRepository)
	cache := NewCache(repo, nil)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").
		Return(nil, errors.New("connection refused")).Once()
	repo.On("Get", ctx, "user-1").
		Return(&Profile{UserID: "user-1"}, nil).Once()

	_, err := cache.Resolve(ctx, "user-1")
	require.Error(t, err)
	assert.False(t, cache.Cached("user-1"))

	profile, err := cache.Resolve(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.True(t, cache.Cached("user-1"))
}

func TestCache_StaysStaleAfterSourceChanges(t *testing.T) {
	repo := new(mockProfileRepository)
	cache := NewCache(repo, nil)
	ctx := context.Background()

	repo.On("Get", ctx, "user-1").
		Return(&Profile{UserID: "user-1", Name: "Old Name"}, nil).Once()

	_, err := cache.Resolve(ctx, "user-1")
	require.NoError(t, err)

	// The repo now holds a different name, but the cache never re-fetches
	profile, err := cache.Resolve(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Old Name", profile.Name)
	assert.Equal(t, 1, cache.Len())
}
