package service

import (
	"context"
	"testing"
	"time"

	"blog_crud_jwt/internal/domain/blog/composer"
	"blog_crud_jwt/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCacheService is a mock of cache.CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func newCachedTestService() (*MockPostRepository, *MockEngagementRepository, *MockCacheService, PostService) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	mockCache := new(MockCacheService)
	inner := NewPostService(mockPosts, mockEngagement, new(MockCategoryRepository))
	return mockPosts, mockEngagement, mockCache, NewCachedPostService(inner, mockCache)
}

func TestCachedGetPost(t *testing.T) {
	t.Run("Cache hit skips the repository", func(t *testing.T) {
		mockPosts, _, mockCache, svc := newCachedTestService()

		mockCache.On("Get", mock.Anything, "post:post-1", mock.AnythingOfType("*composer.PostView")).
			Run(func(args mock.Arguments) {
				view := args.Get(2).(*composer.PostView)
				view.ID = "post-1"
				view.Title = "Cached"
			}).Return(nil)

		view, err := svc.GetPost("post-1", "http://localhost:8080")

		assert.NoError(t, err)
		assert.Equal(t, "Cached", view.Title)
		mockPosts.AssertNotCalled(t, "GetPostByID")
	})

	t.Run("Cache miss falls through and fills the cache", func(t *testing.T) {
		mockPosts, _, mockCache, svc := newCachedTestService()

		mockCache.On("Get", mock.Anything, "post:post-1", mock.Anything).Return(cache.ErrCacheMiss)
		mockPosts.On("GetPostByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)
		mockCache.On("Set", mock.Anything, "post:post-1", mock.Anything, PostCacheTTL).Return(nil)

		view, err := svc.GetPost("post-1", "http://localhost:8080")

		assert.NoError(t, err)
		assert.Equal(t, "post-1", view.ID)
		mockCache.AssertExpectations(t)
	})
}

func TestCachedToggleInvalidation(t *testing.T) {
	t.Run("Toggle drops detail and listing caches", func(t *testing.T) {
		mockPosts, mockEngagement, mockCache, svc := newCachedTestService()

		mockPosts.On("GetPostByID", "post-1").Return(createTestPost("post-1", "author-1"), nil)
		mockEngagement.On("ToggleLike", "post-1", "reader-1").Return(true, nil)
		mockCache.On("Delete", mock.Anything, "post:post-1").Return(nil)
		mockCache.On("InvalidatePattern", mock.Anything, "post_list:*").Return(nil)

		liked, err := svc.ToggleLike("reader-1", "post-1")

		assert.NoError(t, err)
		assert.True(t, liked)
		mockCache.AssertExpectations(t)
	})

	t.Run("Failed toggle leaves the cache alone", func(t *testing.T) {
		mockPosts, mockEngagement, mockCache, svc := newCachedTestService()

		mockPosts.On("GetPostByID", "ghost").Return(nil, ErrNotFound)

		_, err := svc.ToggleLike("reader-1", "ghost")

		assert.Error(t, err)
		mockEngagement.AssertNotCalled(t, "ToggleLike")
		mockCache.AssertNotCalled(t, "Delete")
		mockCache.AssertNotCalled(t, "InvalidatePattern")
	})
}
