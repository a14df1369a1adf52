package service

import (
	"testing"

	"blog_crud_jwt/internal/domain/blog/model"
	"blog_crud_jwt/internal/domain/blog/policy"
	"blog_crud_jwt/internal/domain/blog/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetPosts(filter repository.PostFilter, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(filter, offset, limit)
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) GetPostsWithChildren(filter repository.PostFilter) ([]model.Post, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) UpdatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockPostRepository) CreateRating(rating *model.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockPostRepository) HasRated(postID, authorID string) (bool, error) {
	args := m.Called(postID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) CreateImage(image *model.Image) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *MockPostRepository) GetImageByID(id string) (*model.Image, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockPostRepository) UpdateImage(image *model.Image) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteImage(image *model.Image) error {
	args := m.Called(image)
	return args.Error(0)
}

// MockEngagementRepository is a mock of EngagementRepository
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) ToggleLike(postID, userID string) (bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CountLikes(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) GetOrCreateFavoriteList(userID string) (*model.FavoriteList, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FavoriteList), args.Error(1)
}

func (m *MockEngagementRepository) ToggleFavorite(favoriteListID, postID string) (bool, error) {
	args := m.Called(favoriteListID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) GetFavorites(favoriteListID string) ([]model.Favorite, error) {
	args := m.Called(favoriteListID)
	return args.Get(0).([]model.Favorite), args.Error(1)
}

func (m *MockEngagementRepository) GetFavoritePosts(favoriteListID string) ([]model.Post, error) {
	args := m.Called(favoriteListID)
	return args.Get(0).([]model.Post), args.Error(1)
}

// MockCategoryRepository is a mock of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetList() ([]model.Category, error) {
	args := m.Called()
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(slug string) (*model.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func newTestService() (*MockPostRepository, *MockEngagementRepository, *MockCategoryRepository, PostService) {
	mockPosts := new(MockPostRepository)
	mockEngagement := new(MockEngagementRepository)
	mockCategories := new(MockCategoryRepository)
	svc := NewPostService(mockPosts, mockEngagement, mockCategories)
	return mockPosts, mockEngagement, mockCategories, svc
}

func createTestPost(id, authorID string) *model.Post {
	post := &model.Post{
		AuthorID:     authorID,
		CategorySlug: "tech",
		Title:        "Test post",
		Text:         "Body",
	}
	post.ID = id
	return post
}

func TestCreatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockPosts, _, mockCategories, svc := newTestService()

		mockCategories.On("GetBySlug", "tech").Return(&model.Category{Slug: "tech", Title: "Technology"}, nil)
		mockPosts.On("CreatePost", mock.AnythingOfType("*model.Post")).Return(nil)

		post, err := svc.CreatePost("author-1", "tech", "Title", "Text")

		assert.NoError(t, err)
		assert.Equal(t, "author-1", post.AuthorID)
		mockPosts.AssertExpectations(t)
	})

	t.Run("Unknown category", func(t *testing.T) {
		mockPosts, _, mockCategories, svc := newTestService()

		mockCategories.On("GetBySlug", "nope").Return(nil, gorm.ErrRecordNotFound)

		post, err := svc.CreatePost("author-1", "nope", "Title", "Text")

		assert.Error(t, err)
		assert.Nil(t, post)
		mockPosts.AssertNotCalled(t, "CreatePost")
	})
}

func TestUpdatePost(t *testing.T) {
	t.Run("Author can update", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)
		mockPosts.On("UpdatePost", mock.AnythingOfType("*model.Post")).Return(nil)

		updated, err := svc.UpdatePost(policy.Actor{ID: "author-1"}, "post-1", "", "New title", "")

		assert.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "Body", updated.Text)
	})

	t.Run("Non-author is forbidden", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)

		updated, err := svc.UpdatePost(policy.Actor{ID: "intruder"}, "post-1", "", "New title", "")

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Nil(t, updated)
		mockPosts.AssertNotCalled(t, "UpdatePost")
	})

	t.Run("Anonymous is forbidden", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)

		_, err := svc.UpdatePost(policy.Actor{}, "post-1", "", "New title", "")

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Missing post", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		mockPosts.On("GetPostByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.UpdatePost(policy.Actor{ID: "author-1"}, "ghost", "", "x", "")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("Author can delete", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)
		mockPosts.On("DeletePost", post).Return(nil)

		assert.NoError(t, svc.DeletePost(policy.Actor{ID: "author-1"}, "post-1"))
		mockPosts.AssertExpectations(t)
	})

	t.Run("Non-author is forbidden", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)

		assert.ErrorIs(t, svc.DeletePost(policy.Actor{ID: "intruder"}, "post-1"), ErrForbidden)
		mockPosts.AssertNotCalled(t, "DeletePost")
	})
}

func TestRatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)
		mockPosts.On("HasRated", "post-1", "reader-1").Return(false, nil)
		mockPosts.On("CreateRating", mock.AnythingOfType("*model.Rating")).Return(nil)

		rating, err := svc.RatePost("reader-1", "post-1", 4)

		assert.NoError(t, err)
		assert.Equal(t, 4, rating.Rating)
	})

	t.Run("Value out of range", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		_, err := svc.RatePost("reader-1", "post-1", 6)
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = svc.RatePost("reader-1", "post-1", 0)
		assert.ErrorIs(t, err, ErrInvalidRating)

		mockPosts.AssertNotCalled(t, "CreateRating")
	})

	t.Run("Second rating by the same author", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)
		mockPosts.On("HasRated", "post-1", "reader-1").Return(true, nil)

		_, err := svc.RatePost("reader-1", "post-1", 3)

		assert.ErrorIs(t, err, ErrDuplicateRating)
		mockPosts.AssertNotCalled(t, "CreateRating")
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("States alternate", func(t *testing.T) {
		mockPosts, mockEngagement, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		mockPosts.On("GetPostByID", "post-1").Return(post, nil)
		mockEngagement.On("ToggleLike", "post-1", "reader-1").Return(true, nil).Once()
		mockEngagement.On("ToggleLike", "post-1", "reader-1").Return(false, nil).Once()

		liked, err := svc.ToggleLike("reader-1", "post-1")
		assert.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleLike("reader-1", "post-1")
		assert.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("Missing post", func(t *testing.T) {
		mockPosts, mockEngagement, _, svc := newTestService()

		mockPosts.On("GetPostByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ToggleLike("reader-1", "ghost")

		assert.ErrorIs(t, err, ErrNotFound)
		mockEngagement.AssertNotCalled(t, "ToggleLike")
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Run("Creates favorite list on first use", func(t *testing.T) {
		mockPosts, mockEngagement, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		list := &model.FavoriteList{UserID: "reader-1"}
		list.ID = "list-1"

		mockPosts.On("GetPostByID", "post-1").Return(post, nil)
		mockEngagement.On("GetOrCreateFavoriteList", "reader-1").Return(list, nil)
		mockEngagement.On("ToggleFavorite", "list-1", "post-1").Return(true, nil)

		favorited, err := svc.ToggleFavorite("reader-1", "post-1")

		assert.NoError(t, err)
		assert.True(t, favorited)
		mockEngagement.AssertExpectations(t)
	})
}

func TestGetFavorites(t *testing.T) {
	t.Run("Composes nested posts", func(t *testing.T) {
		_, mockEngagement, _, svc := newTestService()

		list := &model.FavoriteList{UserID: "reader-1"}
		list.ID = "list-1"
		favorite := model.Favorite{FavoriteListID: "list-1", PostID: "post-1", IsFavorited: true}
		favorite.ID = "fav-1"
		post := *createTestPost("post-1", "author-1")

		mockEngagement.On("GetOrCreateFavoriteList", "reader-1").Return(list, nil)
		mockEngagement.On("GetFavorites", "list-1").Return([]model.Favorite{favorite}, nil)
		mockEngagement.On("GetFavoritePosts", "list-1").Return([]model.Post{post}, nil)

		views, err := svc.GetFavorites("reader-1", "http://localhost:8080")

		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.True(t, views[0].IsFavorited)
		assert.Len(t, views[0].Favorites, 1)
		assert.Equal(t, "post-1", views[0].Favorites[0].ID)
	})
}

func TestImageOwnership(t *testing.T) {
	t.Run("Only parent post author can modify image", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		image := &model.Image{PostID: "post-1", Post: post, Path: "old.png"}
		image.ID = "img-1"
		mockPosts.On("GetImageByID", "img-1").Return(image, nil)

		_, err := svc.UpdateImage(policy.Actor{ID: "intruder"}, "img-1", "new.png")
		assert.ErrorIs(t, err, ErrForbidden)

		err = svc.DeleteImage(policy.Actor{ID: "intruder"}, "img-1")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Author updates image path", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		post := createTestPost("post-1", "author-1")
		image := &model.Image{PostID: "post-1", Post: post, Path: "old.png"}
		image.ID = "img-1"
		mockPosts.On("GetImageByID", "img-1").Return(image, nil)
		mockPosts.On("UpdateImage", mock.AnythingOfType("*model.Image")).Return(nil)

		updated, err := svc.UpdateImage(policy.Actor{ID: "author-1"}, "img-1", "new.png")

		assert.NoError(t, err)
		assert.Equal(t, "new.png", updated.Path)
	})
}

func TestSearchPosts(t *testing.T) {
	t.Run("Empty query degrades to plain listing", func(t *testing.T) {
		mockPosts, _, _, svc := newTestService()

		mockPosts.On("GetPosts", repository.PostFilter{Days: 0, Query: ""}, 0, 10).
			Return([]model.Post{}, int64(0), nil)

		_, _, err := svc.SearchPosts("", 0, 1, 10)

		assert.NoError(t, err)
		mockPosts.AssertExpectations(t)
	})
}
