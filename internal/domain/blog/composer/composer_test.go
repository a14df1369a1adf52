package composer

import (
	"testing"
	"time"

	accountModel "blog_crud_jwt/internal/domain/account/model"
	"blog_crud_jwt/internal/domain/blog/model"

	"github.com/stretchr/testify/assert"
)

func TestComposeAuthor(t *testing.T) {
	t.Run("Names present", func(t *testing.T) {
		view := ComposeAuthor(&accountModel.User{FirstName: "Jane", LastName: "Doe"})

		assert.Equal(t, "Jane", view.FirstName)
		assert.Equal(t, "Doe", view.LastName)
		assert.Empty(t, view.FullName)
	})

	t.Run("Both names blank falls back to Anonymous", func(t *testing.T) {
		view := ComposeAuthor(&accountModel.User{})

		assert.Equal(t, AnonymousLabel, view.FullName)
	})

	t.Run("One name present is not anonymous", func(t *testing.T) {
		view := ComposeAuthor(&accountModel.User{FirstName: "Jane"})

		assert.Empty(t, view.FullName)
	})

	t.Run("Nil author falls back to Anonymous", func(t *testing.T) {
		view := ComposeAuthor(nil)

		assert.Equal(t, AnonymousLabel, view.FullName)
	})
}

func TestMeanRating(t *testing.T) {
	t.Run("No ratings yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, meanRating(nil))
	})

	t.Run("Mean rounded to one decimal", func(t *testing.T) {
		ratings := []model.Rating{{Rating: 3}, {Rating: 4}, {Rating: 5}}
		assert.Equal(t, 4.0, meanRating(ratings))

		ratings = []model.Rating{{Rating: 3}, {Rating: 4}}
		assert.Equal(t, 3.5, meanRating(ratings))

		ratings = []model.Rating{{Rating: 1}, {Rating: 1}, {Rating: 2}}
		assert.Equal(t, 1.3, meanRating(ratings))
	})
}

func TestLikeCount(t *testing.T) {
	t.Run("Only rows in liked state are counted", func(t *testing.T) {
		likes := []model.Like{
			{IsLiked: true},
			{IsLiked: false},
			{IsLiked: true},
		}
		assert.Equal(t, 2, likeCount(likes))
	})
}

func TestComposeImageURL(t *testing.T) {
	t.Run("Empty path yields empty string", func(t *testing.T) {
		assert.Equal(t, "", ComposeImageURL(&model.Image{}, "http://localhost:8080"))
	})

	t.Run("Absolute URL passes through", func(t *testing.T) {
		image := &model.Image{Path: "https://bucket.endpoint/posts/a.png"}
		assert.Equal(t, "https://bucket.endpoint/posts/a.png", ComposeImageURL(image, "http://localhost:8080"))
	})

	t.Run("Relative path is prefixed with base URL", func(t *testing.T) {
		image := &model.Image{Path: "/media/a.png"}
		assert.Equal(t, "http://localhost:8080/media/a.png", ComposeImageURL(image, "http://localhost:8080/"))
	})

	t.Run("No base URL keeps relative path", func(t *testing.T) {
		image := &model.Image{Path: "media/a.png"}
		assert.Equal(t, "media/a.png", ComposeImageURL(image, ""))
	})
}

func TestComposePost(t *testing.T) {
	created := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	post := &model.Post{
		Title: "Hello",
		Text:  "Body",
		Author: &accountModel.User{
			FirstName: "Jane",
			LastName:  "Doe",
		},
		Category: &model.Category{Slug: "tech", Title: "Technology"},
		Images: []model.Image{
			{Path: "/media/a.png"},
		},
		Comments: []model.Comment{
			{Text: "Nice", Author: &accountModel.User{}},
		},
		Ratings: []model.Rating{{Rating: 3}, {Rating: 4}, {Rating: 5}},
		Likes:   []model.Like{{IsLiked: true}, {IsLiked: false}},
	}
	post.ID = "post-1"
	post.CreatedAt = created

	view := ComposePost(post, "http://localhost:8080")

	t.Run("Derived fields", func(t *testing.T) {
		assert.Equal(t, 1, view.Likes)
		assert.Equal(t, 4.0, view.Rating)
		assert.Equal(t, "Technology", view.Category)
	})

	t.Run("Time uses dd/mm/yy layout", func(t *testing.T) {
		assert.Equal(t, "09/03/24 15:04:05", view.CreatedAt)
	})

	t.Run("Images composed against base URL", func(t *testing.T) {
		assert.Equal(t, []string{"http://localhost:8080/media/a.png"}, view.Images)
	})

	t.Run("Comment author without names is Anonymous", func(t *testing.T) {
		assert.Len(t, view.Comments, 1)
		assert.Equal(t, AnonymousLabel, view.Comments[0].Author.FullName)
	})
}

func TestComposeFavorite(t *testing.T) {
	favorite := &model.Favorite{IsFavorited: true}
	favorite.ID = "fav-1"

	post := model.Post{Title: "Hello"}
	post.ID = "post-1"

	view := ComposeFavorite(favorite, []model.Post{post}, "")

	assert.Equal(t, "fav-1", view.ID)
	assert.True(t, view.IsFavorited)
	assert.Len(t, view.Favorites, 1)
	assert.Equal(t, "post-1", view.Favorites[0].ID)
}
